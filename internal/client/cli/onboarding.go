package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkrasnova/brandkit/internal/client/profile"
)

// onboardingView walks the wizard from the given step through step 4. Steps
// 1–3 stage their answers locally; step 4 submits the accumulated profile.
func (a *App) onboardingView(ctx context.Context, start int) error {
	if start < 1 {
		start = 1
	}

	for step := start; step <= 4; step++ {
		fields, err := a.promptStep(step)
		if err != nil {
			return err
		}

		if _, err := a.profiles.CompleteStep(ctx, step, fields); err != nil {
			if step == 4 {
				a.toasts.Error("Could not finish onboarding. Your answers are kept; try again.")
				a.flushToasts()
				return nil
			}
			return err
		}
	}

	a.toasts.Success("Onboarding complete!")
	return a.open(ctx, "/cards")
}

func (a *App) promptStep(step int) (profile.Patch, error) {
	switch step {
	case 1:
		fmt.Fprintln(a.out, "Step 1 of 4: your handle")
		handle, err := GetSimpleText(a.reader, "Enter your creator handle", a.out)
		if err != nil {
			return profile.Patch{}, err
		}
		return profile.Patch{Handle: &handle}, nil

	case 2:
		fmt.Fprintln(a.out, "Step 2 of 4: content type")
		ct, err := GetSimpleText(a.reader, "What do you create? (e.g. video, writing, design)", a.out)
		if err != nil {
			return profile.Patch{}, err
		}
		return profile.Patch{ContentType: &ct}, nil

	case 3:
		fmt.Fprintln(a.out, "Step 3 of 4: brand voice")
		desc, err := GetSimpleText(a.reader, "Describe your brand in one sentence", a.out)
		if err != nil {
			return profile.Patch{}, err
		}
		return profile.Patch{BrandDescription: &desc}, nil

	case 4:
		fmt.Fprintln(a.out, "Step 4 of 4: keywords")
		raw, err := GetSimpleText(a.reader, "Enter keywords, comma-separated", a.out)
		if err != nil {
			return profile.Patch{}, err
		}
		var keywords []string
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		return profile.Patch{Keywords: keywords}, nil

	default:
		return profile.Patch{}, fmt.Errorf("no prompt for step %d", step)
	}
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkrasnova/brandkit/internal/client/profile"
)

// settingsForm holds staged profile edits. It reports unsaved state to the
// router's deactivation check, so leaving with pending edits prompts first.
type settingsForm struct {
	patch profile.Patch
	dirty bool
}

func (f *settingsForm) HasUnsavedChanges() bool { return f.dirty }

func (a *App) settingsView(ctx context.Context) error {
	p := a.profiles.Current().Get()
	if p == nil {
		if fetched, err := a.profiles.Fetch(ctx); err == nil {
			p = fetched
		}
	}
	a.printProfile(p)

	if a.linkedin.Refresh(ctx) {
		fmt.Fprintln(a.out, "LinkedIn: connected")
	} else {
		fmt.Fprintln(a.out, "LinkedIn: not connected")
	}

	form := &settingsForm{}
	for {
		line, err := GetSimpleText(a.reader, "settings> (handle/description/keywords/instructions/linkedin/save/back)", a.out)
		if err != nil {
			return err
		}
		parts := strings.SplitN(line, " ", 2)
		arg := ""
		if len(parts) == 2 {
			arg = strings.TrimSpace(parts[1])
		}

		switch parts[0] {
		case "handle":
			form.patch.Handle = &arg
			form.dirty = true

		case "description":
			form.patch.BrandDescription = &arg
			form.dirty = true

		case "keywords":
			var keywords []string
			for _, k := range strings.Split(arg, ",") {
				if k = strings.TrimSpace(k); k != "" {
					keywords = append(keywords, k)
				}
			}
			form.patch.Keywords = keywords
			form.dirty = true

		case "instructions":
			updated, err := a.api.GenerateInstructions(ctx)
			if err != nil {
				fmt.Fprintln(a.out, "Could not generate instructions:", err)
				continue
			}
			a.profiles.Set(updated)
			if updated.AIInstructions != nil {
				fmt.Fprintln(a.out, *updated.AIInstructions)
			}

		case "linkedin":
			a.linkedInSettings(ctx, arg)

		case "save":
			if !form.dirty {
				fmt.Fprintln(a.out, "Nothing to save.")
				continue
			}
			if _, err := a.profiles.Update(ctx, form.patch); err != nil {
				fmt.Fprintln(a.out, "Save failed:", err)
				continue
			}
			form.patch = profile.Patch{}
			form.dirty = false
			a.toasts.Success("Settings saved")
			a.flushToasts()

		case "back", "":
			// pending edits survive until the next navigation asks
			a.router.SetActive(form)
			return nil

		default:
			fmt.Fprintln(a.out, "Unknown setting:", parts[0])
		}
	}
}

func (a *App) linkedInSettings(ctx context.Context, action string) {
	switch action {
	case "disconnect":
		if err := a.linkedin.Disconnect(ctx); err != nil {
			fmt.Fprintln(a.out, "Disconnect failed:", err)
			return
		}
		fmt.Fprintln(a.out, "LinkedIn disconnected.")

	case "connect":
		code, err := GetSimpleText(a.reader, "Paste the authorization code", a.out)
		if err != nil {
			return
		}
		state, err := GetSimpleText(a.reader, "Paste the state value", a.out)
		if err != nil {
			return
		}
		if err := a.linkedin.Connect(ctx, code, state); err != nil {
			fmt.Fprintln(a.out, "Connect failed:", err)
			return
		}
		fmt.Fprintln(a.out, "LinkedIn connected.")

	default:
		fmt.Fprintln(a.out, "Usage: linkedin connect|disconnect")
	}
}

func (a *App) printProfile(p *profile.Profile) {
	if p == nil {
		fmt.Fprintln(a.out, "No profile loaded.")
		return
	}
	str := func(s *string) string {
		if s == nil {
			return "-"
		}
		return *s
	}
	fmt.Fprintf(a.out, "Email:       %s\n", p.Email)
	fmt.Fprintf(a.out, "Handle:      %s\n", str(p.Handle))
	fmt.Fprintf(a.out, "Content:     %s\n", str(p.ContentType))
	fmt.Fprintf(a.out, "Brand:       %s\n", str(p.BrandDescription))
	fmt.Fprintf(a.out, "Keywords:    %s\n", strings.Join(p.Keywords, ", "))
}

package cli

import (
	"context"
	"fmt"

	"github.com/dkrasnova/brandkit/internal/client/cards"
)

func (a *App) cardsView(ctx context.Context) error {
	if err := a.cards.Load(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not load cards:", err)
		return nil
	}

	active := a.cards.Active()
	if len(active) == 0 {
		fmt.Fprintln(a.out, "No cards yet. Use 'generate' to create some.")
		return nil
	}

	fmt.Fprintf(a.out, "Cards (%d):\n", len(active))
	for _, c := range active {
		a.printCard(c)
	}
	return nil
}

func (a *App) scheduledView(ctx context.Context) error {
	if err := a.cards.Load(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not load cards:", err)
		return nil
	}

	scheduled := a.cards.Scheduled()
	if len(scheduled) == 0 {
		fmt.Fprintln(a.out, "Nothing scheduled.")
		return nil
	}

	fmt.Fprintf(a.out, "Scheduled (%d):\n", len(scheduled))
	for _, c := range scheduled {
		a.printCard(c)
	}
	return nil
}

func (a *App) printCard(c cards.Card) {
	edited := ""
	if c.IsEdited {
		edited = " (edited)"
	}
	fmt.Fprintf(a.out, "  [%s]%s %s\n", c.ID, edited, c.Content)
}

func (a *App) generateCards(ctx context.Context) error {
	fmt.Fprintln(a.out, "Generating cards...")
	if err := a.cards.Generate(ctx); err != nil {
		fmt.Fprintln(a.out, "Generation failed:", err)
		return nil
	}
	return a.open(ctx, "/cards")
}

func (a *App) regenerateCard(ctx context.Context, id string) error {
	if err := a.cards.Regenerate(ctx, id); err != nil {
		fmt.Fprintln(a.out, "Regeneration failed:", err)
		return nil
	}
	return a.open(ctx, "/cards")
}

func (a *App) dismissCard(ctx context.Context, id string) error {
	if err := a.cards.Dismiss(ctx, id); err != nil {
		fmt.Fprintln(a.out, "Dismiss failed:", err)
		return nil
	}
	return a.open(ctx, "/cards")
}

func (a *App) scheduleCard(ctx context.Context, id string) error {
	if err := a.cards.Schedule(ctx, id); err != nil {
		fmt.Fprintln(a.out, "Scheduling failed:", err)
		return nil
	}
	return a.open(ctx, "/cards")
}

func (a *App) editCard(ctx context.Context, id string) error {
	content, err := GetSimpleText(a.reader, "New content", a.out)
	if err != nil {
		return err
	}
	if err := a.cards.Edit(ctx, id, content); err != nil {
		fmt.Fprintln(a.out, "Edit failed:", err)
		return nil
	}
	return a.open(ctx, "/cards")
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/campuskiosk/orderflow/internal/fancy"
	"github.com/campuskiosk/orderflow/internal/payment"
	"github.com/campuskiosk/orderflow/internal/wizard"
)

var snapshotCmd = &cli.Command{
	Name:  "snapshot",
	Usage: "Show the saved order state",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		SetupLogger(cmd.Root().String("log-level"))

		cfg, err := loadConfig(cmd.Root())
		if err != nil {
			return cli.Exit(err, 1)
		}
		store, err := openStore(cfg)
		if err != nil {
			return cli.Exit(err, 1)
		}

		snap := wizard.LoadSnapshot(store)
		ref, hasRef := payment.LoadIntentRef(store)
		fmt.Println(renderSnapshot(snap, ref, hasRef))
		return nil
	},
}

// renderSnapshot builds the tree view of a saved order.
func renderSnapshot(snap wizard.Snapshot, ref payment.IntentRef, hasRef bool) string {
	root := fancy.OrderTree("Saved Order")
	root.AddChild(fmt.Sprintf("Step: %s", fancy.StepText(snap.Step)))

	if snap.SelectedMenu != nil {
		root.AddChild(fmt.Sprintf("Menu: %s", fancy.MenuText(snap.SelectedMenu.Name)))
	}

	if len(snap.Extras) > 0 {
		extras := fancy.BranchNode("Extras", fmt.Sprintf("(%d)", len(snap.Extras)))
		for _, extra := range snap.Extras {
			extras.Child(fancy.ExtraText(extra.Name))
		}
		root.AddChild(extras)
	}

	if snap.Contact.Phone != "" {
		root.AddChild(fmt.Sprintf("Phone: %s", snap.Contact.Phone))
	}

	if snap.Delivery != nil {
		delivery := fancy.BranchNode("Delivery", string(snap.Delivery.Kind))
		switch snap.Delivery.Kind {
		case wizard.DeliveryOnsite:
			delivery.Child(fmt.Sprintf("Room: %s", snap.Delivery.RoomNumber))
		case wizard.DeliveryExternal:
			delivery.Child(fmt.Sprintf("Address: %s", fancy.TruncateString(snap.Delivery.Address, 40)))
		}
		delivery.Child(fmt.Sprintf("Slot: %s", fancy.SlotText(snap.Delivery.TimeSlot)))
		root.AddChild(delivery)
	}

	if snap.SessionEmail != "" {
		root.AddChild(fancy.SummaryText(fmt.Sprintf("Session: %s", snap.SessionEmail)))
	}

	if hasRef {
		root.AddChild(fmt.Sprintf("Pending payment: %s (reservation %d)",
			ref.CheckoutIntentID, ref.ReservationID))
	}

	return strings.TrimRight(root.Tree().String(), "\n")
}

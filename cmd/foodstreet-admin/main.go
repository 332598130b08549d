// Command foodstreet-admin is the manager's tool for maintaining the shop
// ledger: adding shops, recording payments, and inspecting balances. It is
// the only writer of the CSV file; the dashboard server stays read-only.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"foodstreet/internal/amqp"
	"foodstreet/internal/cli"
	"foodstreet/internal/core"
	"foodstreet/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	store := cli.OpenLedger(logger, cfg.CSVPath)

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// Change events are best effort. The ledger stays authoritative.
			logger.Warn("AMQP unavailable, change events disabled", "error", err)
		}
	}

	svc := services.NewRecordService(store, amqpClient)
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "list":
		err = runList(svc, os.Args[2:])
	case "show":
		err = runShow(svc, os.Args[2:])
	case "add":
		err = runAdd(ctx, svc, os.Args[2:])
	case "update":
		err = runUpdate(ctx, svc, os.Args[2:])
	case "delete":
		err = runDelete(ctx, svc, os.Args[2:])
	case "mark":
		err = runMark(ctx, svc, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: foodstreet-admin <command> [flags]

commands:
  list     show all shops (add -pending to keep only shops with dues)
  show     print one shop in full
  add      register a new shop
  update   change a shop's details
  delete   remove a shop
  mark     set a charge's amount and status for a shop`)
}

func runList(svc *services.RecordService, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	pendingOnly := fs.Bool("pending", false, "only shops with at least one pending charge")
	if err := fs.Parse(args); err != nil {
		return err
	}

	records := svc.List()
	core.SortByShopNumber(records)
	if *pendingOnly {
		records = core.FilterPending(records)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SHOP\tNAME\tRENT\tSTATUS\tROOM\tSTATUS\tGENSET\tSTATUS\tEB\tSTATUS")
	for _, r := range records {
		roomAmt, roomStatus := core.RoomRentDisplay(r)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name,
			r.Rent.Amount, r.Rent.Status,
			roomAmt, roomStatus,
			r.Generator.Amount, r.Generator.Status,
			r.Electricity.Amount, r.Electricity.Status)
	}
	return w.Flush()
}

func runShow(svc *services.RecordService, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	id := fs.String("id", "", "shop id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	r, ok := svc.Get(*id)
	if !ok {
		return fmt.Errorf("no shop with id %q", *id)
	}

	fmt.Printf("Shop:        %s\n", r.ID)
	fmt.Printf("Name:        %s\n", r.Name)
	fmt.Printf("Owner:       %s\n", r.Owner)
	fmt.Printf("Address:     %s\n", r.Address)
	fmt.Printf("Advance:     %s\n", r.Advance)
	fmt.Printf("Base rent:   %s\n", r.BaseRent)
	fmt.Printf("Rent:        %s (%s)\n", r.Rent.Amount, r.Rent.Status)
	roomAmt, roomStatus := core.RoomRentDisplay(r)
	fmt.Printf("Room rent:   %s (%s)\n", roomAmt, roomStatus)
	fmt.Printf("Generator:   %s (%s)\n", r.Generator.Amount, r.Generator.Status)
	fmt.Printf("Electricity: %s (%s)\n", r.Electricity.Amount, r.Electricity.Status)
	if core.AnyPending(r) {
		fmt.Println("Dues:        PENDING")
	} else {
		fmt.Println("Dues:        settled")
	}
	return nil
}

func runAdd(ctx context.Context, svc *services.RecordService, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	id := fs.String("id", "", "shop id, e.g. \"Shop 4\"")
	name := fs.String("name", "", "shop name")
	owner := fs.String("owner", "", "owner name")
	address := fs.String("address", "", "shop address")
	advance := fs.String("advance", "", "advance deposit")
	baseRent := fs.String("base-rent", "", "agreed monthly rent")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r := core.NewRecord(*id, *name, *owner, *address, *advance, *baseRent)
	if err := svc.Create(ctx, r); err != nil {
		return err
	}
	fmt.Printf("added %s (%s)\n", r.ID, r.Name)
	return nil
}

func runUpdate(ctx context.Context, svc *services.RecordService, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "shop id")
	name := fs.String("name", "", "shop name")
	owner := fs.String("owner", "", "owner name")
	address := fs.String("address", "", "shop address")
	advance := fs.String("advance", "", "advance deposit")
	baseRent := fs.String("base-rent", "", "agreed monthly rent")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	r, ok := svc.Get(*id)
	if !ok {
		return fmt.Errorf("no shop with id %q", *id)
	}

	// Only flags the manager actually passed overwrite existing values.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			r.Name = *name
		case "owner":
			r.Owner = *owner
		case "address":
			r.Address = *address
		case "advance":
			r.Advance = *advance
		case "base-rent":
			r.BaseRent = *baseRent
		}
	})

	if err := svc.Update(ctx, *id, r); err != nil {
		return err
	}
	fmt.Printf("updated %s\n", *id)
	return nil
}

func runDelete(ctx context.Context, svc *services.RecordService, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "shop id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	if err := svc.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", *id)
	return nil
}

func runMark(ctx context.Context, svc *services.RecordService, args []string) error {
	fs := flag.NewFlagSet("mark", flag.ExitOnError)
	id := fs.String("id", "", "shop id")
	charge := fs.String("charge", "", "one of: rent, room, generator, electricity")
	status := fs.String("status", "", "Paid, Pending or NA")
	amount := fs.String("amount", "", "new amount (keeps current if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	if *charge == "" || *status == "" {
		return fmt.Errorf("-charge and -status are required")
	}

	r, ok := svc.Get(*id)
	if !ok {
		return fmt.Errorf("no shop with id %q", *id)
	}

	if err := applyMark(&r, *charge, *status, *amount); err != nil {
		return err
	}

	if err := svc.Update(ctx, *id, r); err != nil {
		return err
	}
	fmt.Printf("marked %s %s as %s\n", *id, *charge, strings.TrimSpace(*status))
	return nil
}

// applyMark sets one charge's status, and optionally its amount, on the
// record. The status must belong to the charge's own domain: rent has
// no NA, so marking rent NA is rejected rather than persisted.
func applyMark(r *core.Record, charge, status, amount string) error {
	var target *core.Charge
	domain := core.UtilityStatuses()
	switch strings.ToLower(charge) {
	case "rent":
		target = &r.Rent
		domain = core.RentStatuses()
	case "room", "room-rent":
		target = &r.RoomRent
	case "generator", "genset":
		target = &r.Generator
	case "electricity", "eb":
		target = &r.Electricity
	default:
		return fmt.Errorf("unknown charge %q", charge)
	}

	requested := core.Status(strings.TrimSpace(status))
	if !requested.In(domain) {
		return fmt.Errorf("invalid status %q for %s: must be one of %v", status, charge, domain)
	}
	target.Status = requested
	if amount != "" {
		target.Amount = amount
	}
	return nil
}

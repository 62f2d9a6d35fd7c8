package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-forms/pkg/render"
	"github.com/goliatone/go-forms/pkg/renderers/tui"
	"github.com/goliatone/go-forms/pkg/schema"
	"github.com/goliatone/go-forms/pkg/session"
)

func main() {
	source := flag.String("source", "forms.yaml", "definition document path")
	formName := flag.String("form", "", "form to run (defaults to the last form in the document)")
	title := flag.String("title", "", "form title override")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	doc, err := schema.LoadFile(*source)
	if err != nil {
		log.Fatalf("Failed to load definitions: %v", err)
	}

	set, err := doc.Build()
	if err != nil {
		log.Fatalf("Failed to build definitions: %v", err)
	}

	name := strings.TrimSpace(*formName)
	if name == "" {
		names := set.Names()
		if len(names) == 0 {
			log.Fatalf("Document %s declares no forms", *source)
		}
		name = names[len(names)-1]
	}

	def, ok := set.Definition(name)
	if !ok {
		log.Fatalf("Form %q not found in %s (available: %s)", name, *source, strings.Join(set.Names(), ", "))
	}

	renderer, err := tui.New()
	if err != nil {
		log.Fatalf("Failed to build renderer: %v", err)
	}

	runner, err := session.New(session.WithRenderer(renderer))
	if err != nil {
		log.Fatalf("Failed to build session: %v", err)
	}

	outcome, err := runner.Run(ctx, session.Request{
		Definition: def,
		Title:      *title,
	})
	if err != nil {
		log.Fatalf("Failed to run form: %v", err)
	}

	if outcome.Status == render.StatusCancelled {
		fmt.Println("Cancelled.")
		return
	}

	payload, err := json.MarshalIndent(outcome.Data, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode data: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Data written to %s\n", *output)
		return
	}
	fmt.Println(string(payload))
}

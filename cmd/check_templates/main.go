package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"
	"whatsapp-campaign/internal/config"
	"whatsapp-campaign/internal/templates"
	"whatsapp-campaign/internal/whatsapp"
)

// Prints each template's status and, for approved ones, its variables and
// the content object built from the template examples. With -remote it also
// shows what the provider returns for the same name and language.
func main() {
	cfg := config.LoadConfig()

	file := flag.String("file", cfg.TemplatesPath, "templates JSON file")
	name := flag.String("name", "", "only check the template with this name")
	language := flag.String("language", "", "only check templates in this language")
	remote := flag.Bool("remote", false, "also fetch the template from the provider")
	flag.Parse()

	if *remote && !cfg.HasCredentials() {
		log.Fatal("-remote needs API_PUBLIC_ID and API_SECRET_KEY")
	}

	store := templates.NewFileStore(*file)
	all, err := store.All()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Printf("%d templates in %s, %d approved", len(all), *file, len(templates.ApprovedOnly(all)))

	client := whatsapp.NewClient(cfg)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for i := range all {
		tmpl := &all[i]
		if *name != "" && tmpl.Name != *name {
			continue
		}
		if *language != "" && tmpl.Language != *language {
			continue
		}
		if !tmpl.IsApproved() {
			log.Printf("%s (%s) skipped: status %s", tmpl.Name, tmpl.Language, tmpl.Status)
			continue
		}

		var names []string
		for _, v := range templates.ExtractVariables(tmpl.Components) {
			names = append(names, v.Name+"="+v.Placeholder)
		}
		log.Printf("%s (%s, %s) variables: [%s]", tmpl.Name, tmpl.Language, tmpl.Category, strings.Join(names, ", "))

		content, err := templates.BuildContent(tmpl, nil)
		if err != nil {
			log.Printf("Error formatting %s: %v", tmpl.Name, err)
			continue
		}
		if err := enc.Encode(content); err != nil {
			log.Printf("Error printing %s: %v", tmpl.Name, err)
		}

		if *remote {
			checkRemote(client, tmpl)
		}
	}
}

func checkRemote(client *whatsapp.Client, tmpl *templates.Template) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resp, err := client.GetTemplates(ctx, tmpl.Name, tmpl.Language)
	if err != nil {
		log.Printf("Provider lookup for %s failed: %v", tmpl.Name, err)
		return
	}
	log.Printf("Provider response for %s: %s", tmpl.Name, resp)
}

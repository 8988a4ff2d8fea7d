package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/itemdeck/cli/internal/api"
	"github.com/gravitrone/itemdeck/cli/internal/config"
	"github.com/gravitrone/itemdeck/cli/internal/items"
)

// ItemsCmd returns the `itemdeck items` command group.
func ItemsCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List and manage items",
	}
	cmd.AddCommand(itemsListCmd(env))
	cmd.AddCommand(itemsShowCmd(env))
	cmd.AddCommand(itemsAddCmd(env))
	cmd.AddCommand(itemsEditCmd(env))
	cmd.AddCommand(itemsDeleteCmd(env))
	return cmd
}

func itemsListCmd(env *Env) *cobra.Command {
	var by, text string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items sorted by name",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			kind, err := api.ParseSearchKind(by)
			if err != nil {
				return err
			}
			cfg, err := config.Resolve()
			if err != nil {
				return err
			}
			gw := env.Gateway(cfg)
			store := items.NewStore(items.NewOrderer(cfg.Locale))

			if strings.TrimSpace(text) != "" {
				err = store.ApplySearch(gw, kind, text)
			} else {
				err = store.LoadAll(gw)
			}
			if err != nil {
				return err
			}
			printItemTable(c.OutOrStdout(), store.Rendered())
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", "name", "search field: name or tag")
	cmd.Flags().StringVar(&text, "text", "", "search text; empty lists everything")
	return cmd
}

func itemsShowCmd(env *Env) *cobra.Command {
	var asMarkdown bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, _, err := openItem(env, args[0])
			if err != nil {
				return err
			}
			if asMarkdown {
				doc, err := marshalItemFile(s.Detail().Input())
				if err != nil {
					return err
				}
				_, err = c.OutOrStdout().Write(doc)
				return err
			}
			printItemDetail(c.OutOrStdout(), s.Detail())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "print as a markdown file with frontmatter (accepted by add --file)")
	return cmd
}

func itemsAddCmd(env *Env) *cobra.Command {
	var f itemFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an item",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			input, err := f.apply(c, api.ItemInput{})
			if err != nil {
				return err
			}
			cfg, err := config.Resolve()
			if err != nil {
				return err
			}
			gw := env.Gateway(cfg)
			s := items.NewScreen(items.NewHistory(items.DefaultMount), items.WithLocale(cfg.Locale), items.WithLogger(env.Logger()))
			if err := failed(items.Drive(gw, s, items.Init{Create: true})); err != nil {
				return err
			}
			if err := failed(items.Drive(gw, s, items.Save{Input: input})); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "item created: %s\n", input.Normalize().Name)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func itemsEditCmd(env *Env) *cobra.Command {
	var f itemFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an item; omitted fields keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, gw, err := openItem(env, args[0])
			if err != nil {
				return err
			}
			if err := failed(items.Drive(gw, s, items.StartEdit{})); err != nil {
				return err
			}
			input, err := f.apply(c, s.Draft())
			if err != nil {
				return err
			}
			if err := failed(items.Drive(gw, s, items.Save{Input: input})); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "item updated: %s\n", s.Detail().Name)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func itemsDeleteCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, gw, err := openItem(env, args[0])
			if err != nil {
				return err
			}
			name := s.Detail().Name
			if err := failed(items.Drive(gw, s, items.Delete{})); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "item deleted: %s\n", name)
			return nil
		},
	}
}

// openItem starts a screen with id selected and waits for its detail.
func openItem(env *Env, id string) (*items.Screen, items.Gateway, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, nil, err
	}
	gw := env.Gateway(cfg)
	mount := items.NewMount(items.DefaultMount)
	s := items.NewScreen(items.NewHistory(mount.ItemPath(id)), items.WithLocale(cfg.Locale), items.WithLogger(env.Logger()))
	if err := failed(items.Drive(gw, s, items.Init{})); err != nil {
		return nil, nil, err
	}
	switch s.DetailStatus() {
	case items.DetailReady:
		return s, gw, nil
	case items.DetailInvalid:
		return nil, nil, fmt.Errorf("item %s not found", id)
	}
	if err := s.DetailErr(); err != nil {
		return nil, nil, fmt.Errorf("load item: %w", err)
	}
	return nil, nil, fmt.Errorf("item %s did not load", id)
}

// failed turns the first warning or error notification into an error.
func failed(notes []items.Notify) error {
	for _, n := range notes {
		if n.Level == items.LevelError || n.Level == items.LevelWarning {
			return errors.New(n.Text)
		}
	}
	return nil
}

// itemFlags are the field flags shared by add and edit.
type itemFlags struct {
	name        string
	description string
	tags        []string
	file        string
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "item name")
	cmd.Flags().StringVar(&f.description, "description", "", "item description (markdown)")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "tag name (repeatable or comma-separated)")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "markdown file with name/tags frontmatter; the body is the description")
}

// apply layers the file and then the explicit flags over base.
func (f *itemFlags) apply(cmd *cobra.Command, base api.ItemInput) (api.ItemInput, error) {
	input := base
	if f.file != "" {
		fh, err := os.Open(f.file)
		if err != nil {
			return input, fmt.Errorf("open item file: %w", err)
		}
		defer fh.Close()
		fromFile, err := parseItemFile(fh)
		if err != nil {
			return input, err
		}
		if fromFile.Name != "" {
			input.Name = fromFile.Name
		}
		if fromFile.Description != "" {
			input.Description = fromFile.Description
		}
		if fromFile.Tags != nil {
			input.Tags = fromFile.Tags
		}
	}
	flags := cmd.Flags()
	if flags.Changed("name") {
		input.Name = f.name
	}
	if flags.Changed("description") {
		input.Description = f.description
	}
	if flags.Changed("tag") {
		input.Tags = f.tags
	}
	return input, nil
}

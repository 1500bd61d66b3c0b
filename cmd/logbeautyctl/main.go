package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/2loga/logbeauty/config"
	"github.com/2loga/logbeauty/internal/app"
	"github.com/2loga/logbeauty/internal/core/domain"
	"github.com/spf13/pflag"
)

// Per-mutation deadline. The remote calls have no cancellation path of
// their own, so every admin operation is bounded here at the call site.
const mutationTimeout = 10 * time.Second

// The admin tool: login, logout and product CRUD against the live
// catalog.
func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()

	application := app.New(context.Background(), cfg, stdinConfirmer{})
	defer application.Close()

	sessions := application.Sessions()
	sessions.Restore()

	switch cmd := os.Args[1]; cmd {
	case "login":
		runLogin(application)
	case "logout":
		sessions.Logout()
		fmt.Println("logged out")
	case "add":
		requireAdmin(application)
		runAdd(application)
	case "update":
		requireAdmin(application)
		runUpdate(application)
	case "delete":
		requireAdmin(application)
		runDelete(application)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr,
		"usage: logbeautyctl <login|logout|add|update|delete> [flags]")
}

func requireAdmin(application *app.App) {
	if application.Sessions().IsAdmin() {
		return
	}
	fmt.Fprintln(os.Stderr, "admin login required: run `logbeautyctl login` first")
	os.Exit(1)
}

func runLogin(application *app.App) {
	fs := newFlagSet("login")
	password := fs.String("password", "", "admin password")
	remember := fs.Bool("remember", false, "persist the session locally")
	parseFlags(fs)

	if err := application.Sessions().Login(*password, *remember); err != nil {
		fmt.Fprintln(os.Stderr, "login failed: wrong password")
		os.Exit(1)
	}
	fmt.Println("logged in")
}

func runAdd(application *app.App) {
	fs := newFlagSet("add")
	form := formFlags(fs)
	parseFlags(fs)

	ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
	defer cancel()

	if err := application.Products().Create(ctx, form()); err != nil {
		die("add", err)
	}
	fmt.Println("product added")
}

func runUpdate(application *app.App) {
	fs := newFlagSet("update")
	id := fs.String("id", "", "product document id")
	form := formFlags(fs)
	parseFlags(fs)

	if *id == "" {
		die("update", fmt.Errorf("--id is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
	defer cancel()

	if err := application.Products().Update(ctx, *id, form()); err != nil {
		die("update", err)
	}
	fmt.Println("product updated")
}

func runDelete(application *app.App) {
	fs := newFlagSet("delete")
	id := fs.String("id", "", "product document id")
	parseFlags(fs)

	if *id == "" {
		die("delete", fmt.Errorf("--id is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
	defer cancel()

	if err := application.Products().Delete(ctx, *id); err != nil {
		die("delete", err)
	}
}

func newFlagSet(cmd string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(cmd, pflag.ExitOnError)
	fs.String("config", "", "config file") // consumed by config.Load
	return fs
}

func parseFlags(fs *pflag.FlagSet) {
	_ = fs.Parse(os.Args[2:])
}

// formFlags registers the product form flags and returns a builder to be
// called after parsing.
func formFlags(fs *pflag.FlagSet) func() domain.ProductForm {
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "product description")
	price := fs.String("price", "", "price, e.g. 25.50")
	rating := fs.String("rating", "0", "rating in [0,5]")
	stock := fs.String("stock", "0", "stock count")
	isNew := fs.Bool("new", false, "mark as a new product")
	imageURL := fs.String("image-url", "", "image URL")
	imageFile := fs.String("image-file", "", "image file to upload")

	return func() domain.ProductForm {
		form := domain.ProductForm{
			Name:        *name,
			Description: *description,
			Price:       *price,
			Rating:      *rating,
			Stock:       *stock,
			IsNew:       *isNew,
			ImageURL:    *imageURL,
		}
		if *imageFile != "" {
			data, err := os.ReadFile(*imageFile)
			if err != nil {
				die("read image file", err)
			}
			form.Image = &domain.ImageFile{
				Name: filepath.Base(*imageFile),
				Data: data,
			}
		}
		return form
	}
}

// stdinConfirmer is the human-in-the-loop gate for destructive
// operations.
type stdinConfirmer struct{}

func (stdinConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func die(op string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", op, err)
	os.Exit(1)
}

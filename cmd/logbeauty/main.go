package main

import (
	"fmt"
	"log/slog"

	"github.com/2loga/logbeauty/config"
	"github.com/2loga/logbeauty/internal/app"
	"github.com/2loga/logbeauty/internal/core/domain"
	"github.com/2loga/logbeauty/pkg/sigctx"
)

// The storefront watcher: keeps a live copy of the product catalog and
// renders every snapshot until interrupted.
func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	application := app.New(sigCtx, cfg, nil)
	defer application.Close()

	unsubscribe := application.Synchronizer().OnSnapshot(renderCatalog)
	defer unsubscribe()

	application.Run()

	if application.Sessions().IsAdmin() {
		slog.Info("remembered admin session is active")
	}

	<-sigCtx.Done()
}

func renderCatalog(ps []domain.Product) {
	fmt.Printf("catalog (%d products)\n", len(ps))
	for _, p := range ps {
		fmt.Printf("  %s\n", renderProduct(p))
	}
}

func renderProduct(p domain.Product) string {
	stock := fmt.Sprintf("stock %d", p.Stock)
	if !p.InStock() {
		stock = "out of stock"
	}

	badge := ""
	if p.IsNew {
		badge = " [new]"
	}

	return fmt.Sprintf(
		"%s%s — R$ %.2f, rating %d/5, %s", p.Name, badge, p.Price, p.Rating, stock,
	)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	cartmodel "storefront/pkg/cart/domain/model"
	"storefront/pkg/storefront/application/service"
)

func itemFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "product", Aliases: []string{"p"}, Usage: "product id", Required: true},
		&cli.StringFlag{Name: "size", Usage: "size, defaults to " + cartmodel.DefaultSize},
		&cli.StringFlag{Name: "color", Usage: "color, defaults to " + cartmodel.DefaultColor},
	}
}

func cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "inspect and change the persisted cart",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "print items and totals",
				Action: withStorefront(showCart),
			},
			{
				Name:  "add",
				Usage: "add a product from the catalog",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "quantity", Aliases: []string{"q"}, Value: 1},
				}, itemFlags()...),
				Action: withStorefront(func(ctx *cli.Context, svc service.StorefrontService) error {
					_, err := svc.AddToCart(ctx.Context, ctx.String("product"), ctx.Int("quantity"), ctx.String("size"), ctx.String("color"))
					if err != nil {
						return err
					}
					return showCart(ctx, svc)
				}),
			},
			{
				Name:  "set",
				Usage: "set the quantity of an item, removing it below one",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "quantity", Aliases: []string{"q"}, Required: true},
				}, itemFlags()...),
				Action: withStorefront(func(ctx *cli.Context, svc service.StorefrontService) error {
					if err := svc.UpdateQuantity(ctx.Context, itemKey(ctx), ctx.Int("quantity")); err != nil {
						return err
					}
					return showCart(ctx, svc)
				}),
			},
			{
				Name:  "remove",
				Usage: "remove an item",
				Flags: itemFlags(),
				Action: withStorefront(func(ctx *cli.Context, svc service.StorefrontService) error {
					if err := svc.RemoveFromCart(ctx.Context, itemKey(ctx)); err != nil {
						return err
					}
					return showCart(ctx, svc)
				}),
			},
			{
				Name:  "clear",
				Usage: "empty the cart",
				Action: withStorefront(func(ctx *cli.Context, svc service.StorefrontService) error {
					if err := svc.ClearCart(ctx.Context); err != nil {
						return err
					}
					return showCart(ctx, svc)
				}),
			},
		},
	}
}

func withStorefront(action func(ctx *cli.Context, svc service.StorefrontService) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		c, err := parseEnv()
		if err != nil {
			return err
		}
		setupLogging(c)

		deps, err := newDependencies(ctx.Context, c)
		if err != nil {
			return err
		}
		defer deps.Close()

		return action(ctx, deps.storefront)
	}
}

func itemKey(ctx *cli.Context) cartmodel.ItemKey {
	return cartmodel.NewItemKey(ctx.String("product"), ctx.String("size"), ctx.String("color"))
}

type cartSummary struct {
	Items     []cartmodel.LineItem `json:"items"`
	ItemCount int                  `json:"itemCount"`
	Subtotal  string               `json:"subtotal"`
	Tax       string               `json:"tax"`
	Shipping  string               `json:"shipping"`
	Total     string               `json:"total"`
}

func showCart(ctx *cli.Context, svc service.StorefrontService) error {
	return printCart(ctx.App.Writer, svc.Cart())
}

func printCart(w io.Writer, view service.CartView) error {
	summary := cartSummary{
		Items:     view.Items,
		ItemCount: view.ItemCount,
		Subtotal:  view.Totals.Subtotal.StringFixed(2),
		Tax:       view.Totals.Tax.StringFixed(2),
		Shipping:  view.Totals.Shipping.StringFixed(2),
		Total:     view.Totals.Total.StringFixed(2),
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

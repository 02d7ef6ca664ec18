package main

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/shopfront/go-client/api"
	"github.com/shopfront/go-client/guard"
	"github.com/shopfront/go-client/nav"
	"github.com/shopfront/go-client/product"
	"github.com/shopfront/go-client/sys"
	"github.com/shopfront/go-client/tui"
)

// requireSession runs the protected-route guard against the current
// session state, exactly as the browser client gates its product views.
func requireSession(a *app, cmd *cobra.Command) error {
	st := a.manager.CurrentUser(cmd.Context())
	decision := guard.Protected(st, nav.Location{Path: "/" + cmd.Name()})
	if decision.Action != guard.ActionRender {
		return errors.Newf("not logged in, run %s first", tui.Command("login"))
	}
	return nil
}

// resolveProductID parses the id argument, or lets the user pick a product
// interactively when the argument was omitted on a terminal.
func resolveProductID(a *app, cmd *cobra.Command, args []string) (int64, error) {
	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid product id %q", args[0])
		}
		return id, nil
	}
	if !tui.HasTTY {
		return 0, errors.New("product id required")
	}

	var items []product.Product
	var fetchErr error
	tui.ShowSpinner("fetching products...", func() {
		items, fetchErr = a.products.List(cmd.Context())
	})
	if fetchErr != nil {
		return 0, fetchErr
	}
	if len(items) == 0 {
		return 0, errors.New("no products")
	}

	opts := make([]tui.Option, 0, len(items))
	for _, p := range items {
		opts = append(opts, tui.Option{
			ID:   strconv.FormatInt(p.ID, 10),
			Text: p.Name + " " + tui.Muted(fmt.Sprintf("%.2f", p.Price)),
		})
	}
	selected := tui.Select(a.log, "Product", "", opts)
	return strconv.ParseInt(selected, 10, 64)
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := requireSession(a, cmd); err != nil {
			return err
		}

		var items []product.Product
		var fetchErr error
		tui.ShowSpinner("fetching products...", func() {
			items, fetchErr = a.products.List(cmd.Context())
		})
		if fetchErr != nil {
			return fetchErr
		}

		rows := make([][]string, 0, len(items))
		for _, p := range items {
			rows = append(rows, []string{
				strconv.FormatInt(p.ID, 10),
				p.Name,
				fmt.Sprintf("%.2f", p.Price),
				strconv.Itoa(p.Quantity),
				strconv.FormatBool(p.Active),
			})
		}
		tui.Table([]string{"ID", "Name", "Price", "Quantity", "Active"}, rows)
		return nil
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one product",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := requireSession(a, cmd); err != nil {
			return err
		}

		id, err := resolveProductID(a, cmd, args)
		if err != nil {
			return err
		}

		var p product.Product
		var fetchErr error
		tui.ShowSpinner("fetching product...", func() {
			p, fetchErr = a.products.Get(cmd.Context(), id)
		})
		if fetchErr != nil {
			if errors.Is(fetchErr, api.ErrNotFound) {
				return errors.Newf("product %d not found", id)
			}
			return fetchErr
		}

		fmt.Println(tui.Title(p.Name))
		tui.Table([]string{"Field", "Value"}, [][]string{
			{"ID", strconv.FormatInt(p.ID, 10)},
			{"Name", p.Name},
			{"Description", tui.MaxWidth(p.Description, 64)},
			{"Price", fmt.Sprintf("%.2f", p.Price)},
			{"Quantity", strconv.Itoa(p.Quantity)},
			{"Active", strconv.FormatBool(p.Active)},
		})
		return nil
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := requireSession(a, cmd); err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = tui.Input(a.log, "Name", "")
		}
		description, _ := cmd.Flags().GetString("description")
		price, _ := cmd.Flags().GetFloat64("price")
		if !cmd.Flags().Changed("price") {
			raw := tui.Input(a.log, "Price", "")
			price, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return errors.Wrapf(err, "invalid price %q", raw)
			}
		}
		quantity, _ := cmd.Flags().GetInt("quantity")

		in := product.CreateProduct{Name: name, Price: price, Quantity: quantity}
		if description != "" {
			in.Description = sys.Ptr(description)
		}

		res := a.products.Create(cmd.Context(), in)
		if res.IsErr() {
			if res.IsErr(api.ErrValidation) {
				return errors.Wrap(res.Err, "product rejected")
			}
			return res.Err
		}
		tui.ShowSuccess("created product %d (%s)", res.Ok.ID, res.Ok.Name)
		return nil
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a product",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := requireSession(a, cmd); err != nil {
			return err
		}

		id, err := resolveProductID(a, cmd, args)
		if err != nil {
			return err
		}

		var in product.UpdateProduct
		if v, _ := cmd.Flags().GetString("name"); cmd.Flags().Changed("name") {
			in.Name = sys.Ptr(v)
		}
		if v, _ := cmd.Flags().GetString("description"); cmd.Flags().Changed("description") {
			in.Description = sys.Ptr(v)
		}
		if v, _ := cmd.Flags().GetFloat64("price"); cmd.Flags().Changed("price") {
			in.Price = sys.Ptr(v)
		}
		if v, _ := cmd.Flags().GetInt("quantity"); cmd.Flags().Changed("quantity") {
			in.Quantity = sys.Ptr(v)
		}

		res := a.products.Update(cmd.Context(), id, in)
		if res.IsErr() {
			if res.IsErr(api.ErrNotFound) {
				return errors.Newf("product %d not found", id)
			}
			return res.Err
		}
		tui.ShowSuccess("updated product %d", res.Ok.ID)
		return nil
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a product",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := requireSession(a, cmd); err != nil {
			return err
		}

		id, err := resolveProductID(a, cmd, args)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !tui.Ask(a.log, tui.Warning(fmt.Sprintf("Delete product %d?", id)), false) {
			tui.ShowWarning("aborted")
			return nil
		}

		res := a.products.Delete(cmd.Context(), id)
		if res.IsErr() {
			if res.IsErr(api.ErrNotFound) {
				return errors.Newf("product %d not found", id)
			}
			return res.Err
		}
		tui.ShowSuccess("deleted product %d", id)
		return nil
	},
}

func init() {
	productsCreateCmd.Flags().String("name", "", "product name")
	productsCreateCmd.Flags().String("description", "", "product description")
	productsCreateCmd.Flags().Float64("price", 0, "product price")
	productsCreateCmd.Flags().Int("quantity", 0, "product quantity")
	productsUpdateCmd.Flags().String("name", "", "product name")
	productsUpdateCmd.Flags().String("description", "", "product description")
	productsUpdateCmd.Flags().Float64("price", 0, "product price")
	productsUpdateCmd.Flags().Int("quantity", 0, "product quantity")
	productsDeleteCmd.Flags().Bool("yes", false, "skip confirmation")
	productsCmd.AddCommand(productsListCmd, productsGetCmd, productsCreateCmd, productsUpdateCmd, productsDeleteCmd)
	rootCmd.AddCommand(productsCmd)
}

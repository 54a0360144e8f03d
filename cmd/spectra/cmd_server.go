package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spectraretail/spectra-pos/app/controllers"
	"github.com/spectraretail/spectra-pos/app/graph"
	"github.com/spectraretail/spectra-pos/app/routes"
	"github.com/spectraretail/spectra-pos/internal/server"
	"github.com/spectraretail/spectra-pos/pkg/router"
	"github.com/spectraretail/spectra-pos/pkg/ws"
)

// spectra serve: boot everything and listen.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// spectra route:list: print the route table without booting the server.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Controllers and schema are registered with nil services; no
		// handler runs here, we only want the table.
		schema, err := graph.NewSchema(nil, nil, nil)
		if err != nil {
			return err
		}

		r := router.New()
		routes.RegisterAPI(r, routes.Controllers{
			Auth:      controllers.NewAuthController(nil),
			Catalog:   controllers.NewCatalogController(nil),
			Customers: controllers.NewCustomerController(nil, nil),
			Checkout:  controllers.NewCheckoutController(nil, nil),
			Reports:   controllers.NewReportController(nil, nil, nil),
		}, schema, ws.NewHub())

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

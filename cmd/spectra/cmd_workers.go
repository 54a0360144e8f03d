package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spectraretail/spectra-pos/app/jobs"
	"github.com/spectraretail/spectra-pos/app/repositories"
	"github.com/spectraretail/spectra-pos/app/services"
	"github.com/spectraretail/spectra-pos/internal/server"
	"github.com/spectraretail/spectra-pos/pkg/cache"
	"github.com/spectraretail/spectra-pos/pkg/database"
	"github.com/spectraretail/spectra-pos/pkg/queue"
	"github.com/spectraretail/spectra-pos/pkg/schedule"
	"github.com/spectraretail/spectra-pos/pkg/storage"
)

var queueWorkersFlag int

// spectra queue:work: process background jobs outside the web process.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := bootDB(); err != nil {
			return err
		}
		if err := cache.Connect(); err != nil {
			fmt.Println("Redis unavailable, using the in-memory queue.")
		} else {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		}
		storage.Connect()
		queue.UseDB(database.DB)

		catalog := services.NewCatalogService(repositories.NewProductRepository(database.DB))
		jobs.Boot(catalog)

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

// spectra schedule:list: show the recurring tasks the server runs.
var scheduleListCmd = &cobra.Command{
	Use:   "schedule:list",
	Short: "List the scheduled tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		server.RegisterSchedule(nil, nil)

		tasks := schedule.List()
		if len(tasks) == 0 {
			fmt.Println("No scheduled tasks registered.")
			return nil
		}
		for _, t := range tasks {
			fmt.Println("  -", t)
		}
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
}

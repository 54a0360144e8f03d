// Package seeders holds the database seed functions. Each file registers
// its seeder from init(); the CLI runs them all with "spectra seed", or a
// subset with "spectra seed staff products".
package seeders

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/pkg/logger"
)

// Seeder populates one slice of the database. Seeders are idempotent so a
// rerun never duplicates rows.
type Seeder struct {
	Name string
	Run  func(db *gorm.DB) error
}

var (
	mu       sync.Mutex
	registry []Seeder
)

// Register adds a seeder. Call from init() in the seeder's file.
func Register(name string, run func(db *gorm.DB) error) {
	mu.Lock()
	defer mu.Unlock()
	registry = append(registry, Seeder{Name: name, Run: run})
}

// Run executes the named seeders in registration order, or every registered
// seeder when names is empty. It stops on the first error.
func Run(db *gorm.DB, names ...string) error {
	mu.Lock()
	all := append([]Seeder(nil), registry...)
	mu.Unlock()

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	ran := 0
	for _, s := range all {
		if len(wanted) > 0 && !wanted[s.Name] {
			continue
		}

		logger.Info("seeding", "name", s.Name)
		if err := s.Run(db); err != nil {
			return fmt.Errorf("seeder %q: %w", s.Name, err)
		}
		ran++
	}

	if ran == 0 {
		fmt.Println("Nothing to seed.")
		return nil
	}

	fmt.Printf("Seeded %d group(s).\n", ran)
	return nil
}

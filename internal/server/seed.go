package server

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/roamio/globetrotter/internal/globetrotter"
)

// SeedCatalog inserts the starter destination set when the catalog is empty.
// Idempotent: does nothing once any destination exists.
func SeedCatalog(ctx context.Context, logger *slog.Logger, store Store) error {
	count, err := store.CountDestinations(ctx)
	if err != nil {
		return fmt.Errorf("counting destinations: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, d := range starterCatalog {
		if _, err := store.CreateDestination(ctx, d); err != nil {
			return fmt.Errorf("seeding %s: %w", d.City, err)
		}
	}
	logger.Info("seeded starter catalog", "destinations", len(starterCatalog))
	return nil
}

// SeedAdmin bootstraps the catalog admin account from configuration. Existing
// accounts are left untouched.
func SeedAdmin(ctx context.Context, logger *slog.Logger, admin AdminStore, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	if err := admin.EnsureAdmin(ctx, email, string(hash)); err != nil {
		return err
	}
	logger.Info("admin account ensured", "email", email)
	return nil
}

var starterCatalog = []globetrotter.Destination{
	{
		City: "Paris", Country: "France",
		Clues: []string{
			"This city is home to a famous tower that sparkles every night.",
			"Known as the 'City of Love' and a hub for fashion and art.",
			"A river called the Seine runs right through its heart.",
		},
		FunFacts: []string{
			"The Eiffel Tower was supposed to be dismantled after 20 years but was saved because it was useful as a radio tower.",
			"There is only one stop sign in the entire city.",
		},
	},
	{
		City: "Tokyo", Country: "Japan",
		Clues: []string{
			"This city has the busiest pedestrian crossing in the world.",
			"You can visit an entire district dedicated to anime, manga, and electronics.",
			"More Michelin-starred restaurants than any other city on earth.",
		},
		FunFacts: []string{
			"Tokyo was originally a small fishing village called Edo.",
			"The city has over 160,000 restaurants, more than any other city in the world.",
		},
	},
	{
		City: "New York", Country: "USA",
		Clues: []string{
			"Home to a green statue gifted by France in the 1800s.",
			"Nicknamed 'The Big Apple' and known for its bright, bustling square.",
			"Its underground train network never closes.",
		},
		FunFacts: []string{
			"The Statue of Liberty was shipped from France in 350 pieces.",
			"Times Square was once called Longacre Square before the New York Times moved in.",
		},
	},
	{
		City: "Rome", Country: "Italy",
		Clues: []string{
			"An ancient amphitheater here once hosted gladiator fights.",
			"Tradition says tossing a coin into one of its fountains guarantees a return visit.",
			"An entire sovereign country sits inside this city.",
		},
		FunFacts: []string{
			"About 3,000 euros are thrown into the Trevi Fountain every day and donated to charity.",
			"Romans built roads so well that some are still in use over 2,000 years later.",
		},
	},
	{
		City: "Sydney", Country: "Australia",
		Clues: []string{
			"Its opera house looks like sails billowing in the harbour.",
			"Famous for a crescent beach called Bondi.",
			"The harbour bridge here is nicknamed 'The Coathanger'.",
		},
		FunFacts: []string{
			"The Sydney Opera House has over one million roof tiles.",
			"Sydney's New Year's Eve fireworks use about 7 tonnes of pyrotechnics.",
		},
	},
	{
		City: "Cairo", Country: "Egypt",
		Clues: []string{
			"The last surviving wonder of the ancient world stands just outside this city.",
			"Africa's largest city, sitting on the banks of the Nile.",
			"Its grand bazaar, Khan el-Khalili, has traded since the 14th century.",
		},
		FunFacts: []string{
			"The Great Pyramid of Giza was the tallest man-made structure for over 3,800 years.",
			"Cairo means 'The Victorious' in Arabic.",
		},
	},
	{
		City: "Rio de Janeiro", Country: "Brazil",
		Clues: []string{
			"A giant statue watches over this city from a mountaintop.",
			"Hosts the world's largest carnival every year.",
			"Its most famous beach is called Copacabana.",
		},
		FunFacts: []string{
			"Christ the Redeemer was struck by lightning and lost a thumb in 2014.",
			"Rio's Carnival attracts about two million people per day on the streets.",
		},
	},
	{
		City: "London", Country: "England",
		Clues: []string{
			"A giant clock tower chimes by the river here, often called by the wrong name.",
			"Ravens are kept at its ancient fortress by royal decree.",
			"Its underground railway is the oldest in the world.",
		},
		FunFacts: []string{
			"Big Ben is the name of the bell, not the tower.",
			"The London Underground opened in 1863 with steam trains.",
		},
	},
}

// Command seed fills the configured database with fake demo data.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wheresmymoney/internal/config"
	"wheresmymoney/internal/database"
	"wheresmymoney/internal/logger"
	"wheresmymoney/internal/models"
	"wheresmymoney/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run() error {
	opts := options{}
	flag.IntVar(&opts.Categories, "categories", 8, "number of categories to create")
	flag.IntVar(&opts.Transactions, "transactions", 200, "number of transactions to create")
	flag.IntVar(&opts.Letters, "letters", 5, "number of letters to create")
	seedValue := flag.Int64("seed", 0, "random seed (0 picks one)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dbConfig, err := database.NewConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	manager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer manager.Close()

	if err := manager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := manager.DB()
	loc := cfg.ReportTimezone
	now := func() time.Time { return time.Now().In(loc) }
	s := &seeder{
		faker:        gofakeit.New(*seedValue),
		categories:   services.NewCategoryService(db),
		transactions: services.NewTransactionService(db, now),
		letters:      services.NewLetterService(db, now),
		now:          now,
	}

	result, err := s.seed(opts)
	if err != nil {
		return err
	}
	logger.Get().Infow("seed complete",
		"categories", result.Categories,
		"transactions", result.Transactions,
		"letters", result.Letters)
	return nil
}

type options struct {
	Categories   int
	Transactions int
	Letters      int
}

type seeder struct {
	faker        *gofakeit.Faker
	categories   services.CategoryServicer
	transactions services.TransactionServicer
	letters      services.LetterServicer
	now          func() time.Time
}

var title = cases.Title(language.English)

var periodTypes = []string{string(models.PeriodWeekly), string(models.PeriodMonthly), string(models.PeriodYearly)}

// seed creates the requested records and returns how many of each exist
// afterwards. The first category is always an income source so reports have
// something to compare against.
func (s *seeder) seed(opts options) (options, error) {
	var created []models.Category
	for i := 0; i < opts.Categories; i++ {
		category, err := s.category(i, created)
		if err != nil {
			return options{}, err
		}
		created = append(created, *category)
	}

	done := options{Categories: len(created)}
	if len(created) == 0 {
		return done, nil
	}

	today := models.DateOf(s.now())
	for i := 0; i < opts.Transactions; i++ {
		category := created[s.faker.Number(0, len(created)-1)]
		date := s.faker.DateRange(today.AddDate(-1, 0, 0), today)
		amount := s.amount(category)
		if _, err := s.transactions.CreateTransaction(&date, amount,
			s.faker.Word(), s.faker.Sentence(6), category.Name); err != nil {
			return done, fmt.Errorf("failed to create transaction: %w", err)
		}
		done.Transactions++
	}

	for i := 0; i < opts.Letters; i++ {
		date := s.faker.DateRange(today.AddDate(0, -3, 0), today)
		if _, err := s.letters.CreateLetter(&date, s.faker.Paragraph(1, 3, 10, " "), s.faker.Word()); err != nil {
			return done, fmt.Errorf("failed to create letter: %w", err)
		}
		done.Letters++
	}

	return done, nil
}

func (s *seeder) category(i int, existing []models.Category) (*models.Category, error) {
	name := fmt.Sprintf("%s %d", title.String(s.faker.Noun()), i+1)
	periodType := models.PeriodType(s.faker.RandomString(periodTypes))

	budget := decimal.NewFromFloat(s.faker.Price(10, 1500)).Round(2)
	if i == 0 || s.faker.Number(1, 5) == 1 {
		budget = budget.Mul(decimal.NewFromInt(4)).Neg()
	}

	var parent *string
	if len(existing) > 0 && s.faker.Bool() {
		p := existing[s.faker.Number(0, len(existing)-1)].Name
		parent = &p
	}

	category, err := s.categories.CreateCategory(name, periodType, budget, parent)
	if err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", name, err)
	}
	return category, nil
}

// amount draws a transaction amount with the sign of the category budget.
func (s *seeder) amount(category models.Category) decimal.Decimal {
	limit := category.Budget.Abs().InexactFloat64() / 4
	if limit < 5 {
		limit = 5
	}
	amount := decimal.NewFromFloat(s.faker.Price(1, limit)).Round(2)
	if category.Budget.IsNegative() {
		return amount.Neg()
	}
	return amount
}

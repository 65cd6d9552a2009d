package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/propvest/investment-engine/internal/calculation"
	"github.com/propvest/investment-engine/internal/config"
	"github.com/propvest/investment-engine/internal/domain"
	"github.com/propvest/investment-engine/internal/output"
	pdecimal "github.com/propvest/investment-engine/pkg/decimal"
)

var (
	configPath     string
	investmentPath string
	atFlag         string
	formatFlag     string
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "investd",
	Short: "Investment returns and withdrawal calculation engine",
	Long: `investd prices property investments: unrealized returns for dashboards
and complete withdrawal quotes (yield, appreciation, penalty, fees).
All calculations are pure functions over the investment record and an
explicit evaluation instant.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "platform configuration file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&investmentPath, "investment", "i", "", "investment record file (YAML)")
	rootCmd.PersistentFlags().StringVar(&atFlag, "at", "", "evaluation instant (RFC3339, default now)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "console", "output format: console, json, csv")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(returnsCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(exampleConfigCmd)
}

func buildEngine() (*calculation.Engine, error) {
	yearLength := time.Duration(0)
	if configPath != "" {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		yearLength = cfg.Clock.Effective()
	}
	engine := calculation.NewEngineWithYearLength(yearLength)
	if verbose {
		logger, err := newZapLogger()
		if err != nil {
			return nil, err
		}
		engine.SetLogger(logger)
	}
	return engine, nil
}

func evaluationInstant() (time.Time, error) {
	if atFlag == "" {
		return time.Now().UTC(), nil
	}
	at, err := time.Parse(time.RFC3339, atFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at value %q: %w", atFlag, err)
	}
	return at, nil
}

func loadInvestment() (*domain.Investment, error) {
	if investmentPath == "" {
		return nil, fmt.Errorf("--investment is required")
	}
	return config.NewInputParser().LoadInvestment(investmentPath)
}

func render(report *output.Report) error {
	data, err := output.GenerateReport(report, formatFlag)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute a withdrawal quote for an investment",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := buildEngine()
		if err != nil {
			return err
		}
		inv, err := loadInvestment()
		if err != nil {
			return err
		}
		at, err := evaluationInstant()
		if err != nil {
			return err
		}
		quote, err := engine.ComputeWithdrawalQuote(inv, at)
		if err != nil {
			return err
		}
		return render(&output.Report{Quote: quote})
	},
}

var returnsCmd = &cobra.Command{
	Use:   "returns",
	Short: "Compute unrealized returns for an investment",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := buildEngine()
		if err != nil {
			return err
		}
		inv, err := loadInvestment()
		if err != nil {
			return err
		}
		at, err := evaluationInstant()
		if err != nil {
			return err
		}
		returns, err := engine.ComputeUnrealizedReturns(inv, at)
		if err != nil {
			return err
		}
		return render(&output.Report{Returns: returns})
	},
}

var (
	createAmount   string
	createType     string
	createProperty string
	createFeePct   string
	createFeeMode  string
	createLockIn   int
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an investment record with rates resolved and frozen",
	Long: `create resolves effective rates through the tier chain (property
terms, then global settings, then platform defaults), deducts any upfront
management fee, derives the lock-in and maturity dates, and prints the
resulting record as YAML. This is the only point at which rates are
resolved; the record carries its snapshot from here on.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			return fmt.Errorf("--config is required")
		}
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(configPath)
		if err != nil {
			return err
		}
		engine := calculation.NewEngineWithYearLength(cfg.Clock.Effective())
		if verbose {
			logger, err := newZapLogger()
			if err != nil {
				return err
			}
			engine.SetLogger(logger)
		}

		amount, err := pdecimal.NewMoneyFromString(createAmount)
		if err != nil {
			return fmt.Errorf("invalid --amount value %q: %w", createAmount, err)
		}
		feePct := decimal.Zero
		if createFeePct != "" {
			feePct, err = decimal.NewFromString(createFeePct)
			if err != nil {
				return fmt.Errorf("invalid --fee-percentage value %q: %w", createFeePct, err)
			}
		}
		feeMode := domain.FeeDeductionType(createFeeMode)
		if feeMode != domain.FeeUpfront && feeMode != domain.FeeRecurring {
			return fmt.Errorf("--fee-deduction must be %q or %q", domain.FeeUpfront, domain.FeeRecurring)
		}
		at, err := evaluationInstant()
		if err != nil {
			return err
		}

		req := calculation.InvestmentRequest{
			PropertyID:       createProperty,
			Type:             domain.InvestmentType(createType),
			Amount:           amount,
			FeePercentage:    feePct,
			FeeDeductionType: feeMode,
			CreatedAt:        at,
		}
		if createLockIn > 0 {
			req.LockInYears = &createLockIn
		}

		inv, err := engine.NewInvestment(req, cfg.PropertyTerms(createProperty), &cfg.Settings)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(inv)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var exampleConfigCmd = &cobra.Command{
	Use:   "example-config",
	Short: "Print an example platform configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewInputParser().CreateExampleConfiguration()
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	createCmd.Flags().StringVar(&createAmount, "amount", "", "gross amount to invest")
	createCmd.Flags().StringVar(&createType, "type", string(domain.TypeSimpleAnnual), "investment type: simple_annual or bond")
	createCmd.Flags().StringVar(&createProperty, "property", "", "property id for per-property terms")
	createCmd.Flags().StringVar(&createFeePct, "fee-percentage", "", "management fee percentage")
	createCmd.Flags().StringVar(&createFeeMode, "fee-deduction", string(domain.FeeRecurring), "fee deduction type: upfront or recurring")
	createCmd.Flags().IntVar(&createLockIn, "lock-in-years", 0, "bond lock-in period in years")
	_ = createCmd.MarkFlagRequired("amount")
}

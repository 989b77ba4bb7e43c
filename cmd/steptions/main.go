package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/decenzio/steptions-app/internal/engine"
	"github.com/decenzio/steptions-app/internal/repository"
	"github.com/decenzio/steptions-app/types"
)

var rootCmd = &cobra.Command{
	Use:   "steptions",
	Short: "Valuation and settlement engine for the options exchange",
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Quote an option order against the latest market snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		symbol, _ := cmd.Flags().GetString("symbol")
		strikeStr, _ := cmd.Flags().GetString("strike")
		expirationStr, _ := cmd.Flags().GetString("expiration")
		optionType, _ := cmd.Flags().GetString("type")
		quantity, _ := cmd.Flags().GetInt64("quantity")

		strike, err := decimal.NewFromString(strikeStr)
		if err != nil {
			log.Fatalf("invalid strike %q: %v", strikeStr, err)
		}
		expiration, err := time.Parse("2006-01-02", expirationStr)
		if err != nil {
			log.Fatalf("invalid expiration %q: %v", expirationStr, err)
		}

		eng, db := mustEngine()
		defer db.Close()

		order, err := eng.QuoteOption(context.Background(), symbol, strike, expiration,
			types.OptionType(optionType), quantity, time.Now().UTC())
		if err != nil {
			log.Fatalf("quote option: %v", err)
		}
		log.WithFields(log.Fields{
			"symbol":   order.Symbol,
			"type":     order.OptionType,
			"strike":   order.Strike,
			"premium":  order.Premium,
			"subtotal": order.Subtotal,
			"fee":      order.Fee,
			"total":    order.TotalCost,
		}).Info("quoted order")
	},
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Validate a pool deposit and project its lockup earnings",
	Run: func(cmd *cobra.Command, args []string) {
		symbol, _ := cmd.Flags().GetString("symbol")
		amountStr, _ := cmd.Flags().GetString("amount")
		currency, _ := cmd.Flags().GetString("currency")

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			log.Fatalf("invalid amount %q: %v", amountStr, err)
		}
		if currency == "" {
			currency = symbol
		}

		eng, db := mustEngine()
		defer db.Close()

		earnings, err := eng.ProjectDeposit(context.Background(), symbol,
			types.NewMoney(amount, types.Currency(currency)))
		if err != nil {
			log.Fatalf("project deposit: %v", err)
		}
		log.WithFields(log.Fields{
			"pool":     symbol,
			"earnings": earnings.Amount,
			"currency": earnings.Currency,
		}).Info("projected earnings over full lockup")
	},
}

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Exercise an open option position early at the latest spot",
	Run: func(cmd *cobra.Command, args []string) {
		idStr, _ := cmd.Flags().GetString("contract")
		quantity, _ := cmd.Flags().GetInt64("quantity")

		contractID, err := uuid.Parse(idStr)
		if err != nil {
			log.Fatalf("invalid contract id %q: %v", idStr, err)
		}

		eng, db := mustEngine()
		defer db.Close()

		updated, result, err := eng.ExerciseContract(context.Background(), contractID, quantity, time.Now().UTC())
		if err != nil {
			log.Fatalf("exercise contract: %v", err)
		}
		log.WithFields(log.Fields{
			"contract":     updated.ID,
			"symbol":       updated.Symbol,
			"type":         updated.OptionType,
			"exercised":    result.Quantity,
			"remaining":    updated.Quantity,
			"intrinsic":    result.IntrinsicValue,
			"requiredCost": result.RequiredCost,
			"netProceeds":  result.NetProceeds,
			"state":        updated.State,
		}).Info("exercised contracts")
	},
}

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Value an owner's portfolio and print the report",
	Run: func(cmd *cobra.Command, args []string) {
		owner, _ := cmd.Flags().GetString("owner")
		csvPath, _ := cmd.Flags().GetString("csv")

		eng, db := mustEngine()
		defer db.Close()

		valuation, err := eng.ValuePortfolio(context.Background(), owner, time.Now().UTC())
		if err != nil {
			log.Fatalf("value portfolio: %v", err)
		}
		eng.PrintValuation(owner, valuation)
		if csvPath != "" {
			if err := eng.WriteValuationCSVFile(csvPath, valuation); err != nil {
				log.Fatalf("write valuation csv: %v", err)
			}
			log.Infof("wrote valuation to %s", csvPath)
		} else if err := eng.WriteValuationCSV(valuation); err != nil {
			log.Fatalf("write valuation csv: %v", err)
		}
	},
}

var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Auto-settle every expired option contract",
	Run: func(cmd *cobra.Command, args []string) {
		eng, db := mustEngine()
		defer db.Close()

		settlements, err := eng.SettleExpired(context.Background(), time.Now().UTC())
		if err != nil {
			log.Fatalf("settle expired: %v", err)
		}
		for _, s := range settlements {
			entry := log.WithFields(log.Fields{
				"contract": s.Contract.ID,
				"symbol":   s.Contract.Symbol,
				"type":     s.Contract.OptionType,
			})
			if s.Lapsed {
				entry.Info("contract lapsed worthless")
				continue
			}
			entry.WithFields(log.Fields{
				"intrinsic":   s.Result.IntrinsicValue,
				"netProceeds": s.Result.NetProceeds,
			}).Info("contract settled at intrinsic value")
		}
		log.Infof("settled %d contracts", len(settlements))
	},
}

var volCmd = &cobra.Command{
	Use:   "vol",
	Short: "Estimate realized volatility from daily close history",
	Run: func(cmd *cobra.Command, args []string) {
		symbol, _ := cmd.Flags().GetString("symbol")
		lookback, _ := cmd.Flags().GetInt("lookback")

		eng, db := mustEngine()
		defer db.Close()

		vol, err := eng.EstimateVolatilityFor(context.Background(), symbol, lookback, time.Now().UTC())
		if err != nil {
			log.Fatalf("estimate volatility: %v", err)
		}
		log.WithFields(log.Fields{
			"symbol":     symbol,
			"lookback":   lookback,
			"volatility": vol,
		}).Info("annualized realized volatility")
	},
}

func mustEngine() (*engine.Engine, *repository.Database) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	db, err := repository.NewDatabase(dbURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	pricing := engine.NewPricingConfig()
	if path := os.Getenv("PRICING_CONFIG"); path != "" {
		pricing, err = engine.LoadPricingConfig(path)
		if err != nil {
			log.Fatalf("load pricing config: %v", err)
		}
	}

	reporting := engine.NewReportingConfig(true, "Portfolio Valuation", os.Getenv("VALUATION_CSV"))
	return engine.NewEngine(&db, pricing, reporting), &db
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	priceCmd.Flags().String("symbol", "", "underlying symbol")
	priceCmd.Flags().String("strike", "", "strike price in USD")
	priceCmd.Flags().String("expiration", "", "expiration date (YYYY-MM-DD)")
	priceCmd.Flags().String("type", string(types.TypeCall), "CALL or PUT")
	priceCmd.Flags().Int64("quantity", 1, "number of contracts")

	exerciseCmd.Flags().String("contract", "", "contract id")
	exerciseCmd.Flags().Int64("quantity", 1, "number of contracts to exercise")

	projectCmd.Flags().String("symbol", "", "pool symbol")
	projectCmd.Flags().String("amount", "", "deposit amount")
	projectCmd.Flags().String("currency", "", "USD or native symbol (default native)")

	valueCmd.Flags().String("owner", "", "account owner")
	valueCmd.Flags().String("csv", "", "optional path for a CSV export")

	volCmd.Flags().String("symbol", "", "underlying symbol")
	volCmd.Flags().Int("lookback", 30, "lookback window in days")

	rootCmd.AddCommand(priceCmd, projectCmd, exerciseCmd, valueCmd, settleCmd, volCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

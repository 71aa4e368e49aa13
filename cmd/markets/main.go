// Command markets dumps one page of the ranked market listing to stdout.
// Handy for eyeballing the upstream without starting the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"coinscope/internal/domain"
	"coinscope/internal/infrastructure/coingecko"
	"coinscope/internal/usecase"
	"coinscope/pkg/format"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	page := flag.Int("page", 1, "listing page")
	perPage := flag.Int("per-page", 50, "rows per page")
	query := flag.String("q", "", "filter by name/symbol substring")
	sortBy := flag.String("sort", "market_cap_rank", "sort key")
	order := flag.String("order", "asc", "asc or desc")
	flag.Parse()

	_ = godotenv.Load()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	client := coingecko.NewClient(os.Getenv("COINGECKO_API_KEY"), "", false, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	coins, err := client.ListCoins(ctx, *page, *perPage)
	if err != nil {
		log.Fatal("Failed to fetch listings", zap.Error(err))
	}

	key := domain.SortKey(*sortBy)
	if !key.Valid() {
		key = domain.SortByRank
	}
	dir := domain.SortOrder(*order)
	if !dir.Valid() {
		dir = domain.SortAsc
	}
	coins = usecase.Project(coins, *query, key, dir)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tSYMBOL\tPRICE\t24H\tMARKET CAP\tVOLUME")
	for _, c := range coins {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.MarketCapRank,
			c.Name,
			c.Symbol,
			format.FormatPrice(c.CurrentPrice),
			format.FormatPercentage(c.PriceChangePct24h),
			format.FormatNumber(c.MarketCap),
			format.FormatNumber(c.TotalVolume),
		)
	}
	w.Flush()
}

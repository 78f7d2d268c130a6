package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pkordes/smarttravel/internal/dealgen"
	"github.com/pkordes/smarttravel/internal/domain"
)

type rankOptions struct {
	destination string
	budget      string
	duration    string
	travelType  string
	departure   string
	nights      int
	top         int
	seed        string
	agents      []string
}

func newRankCmd() *cobra.Command {
	var o rankOptions
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Generate and score offers for a trip without touching the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRank(cmd.OutOrStdout(), o, time.Now())
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.destination, "destination", "Bali", "destination name")
	f.StringVar(&o.budget, "budget", "mid-range", "budget, ultra-luxury, luxury, mid-range or budget")
	f.StringVar(&o.duration, "duration", "1 week", "trip duration, e.g. \"3-5 days\" or \"2 weeks\"")
	f.StringVar(&o.travelType, "travel-type", "solo", "honeymoon, solo, family, business or group")
	f.StringVar(&o.departure, "departure", "", "departure date (YYYY-MM-DD), default 30 days from today")
	f.IntVar(&o.nights, "nights", 7, "nights between departure and return")
	f.IntVar(&o.top, "top", dealgen.TopN, "number of offers to keep; 0 shows every offer")
	f.StringVar(&o.seed, "seed", "", "trip UUID to seed the generator; random when empty")
	f.StringSliceVar(&o.agents, "agents", nil, "restrict to these agent names")
	return cmd
}

func runRank(w io.Writer, o rankOptions, now time.Time) error {
	id := uuid.New()
	if o.seed != "" {
		var err error
		if id, err = uuid.Parse(o.seed); err != nil {
			return fmt.Errorf("--seed: %w", err)
		}
	}

	departure := now.AddDate(0, 0, 30)
	if o.departure != "" {
		var err error
		if departure, err = time.Parse(time.DateOnly, o.departure); err != nil {
			return fmt.Errorf("--departure: %w", err)
		}
	}
	if o.nights < 1 {
		return fmt.Errorf("--nights must be at least 1")
	}

	trip := domain.Trip{
		ID:            id,
		Destination:   o.destination,
		Duration:      o.duration,
		TravelType:    o.travelType,
		Budget:        o.budget,
		DepartureDate: departure,
		ReturnDate:    departure.AddDate(0, 0, o.nights),
	}

	candidates := dealgen.Generate(trip, dealgen.ActivePersonas(o.agents), dealgen.SeedFor(id))
	if len(candidates) == 0 {
		candidates = []domain.Deal{dealgen.Fallback(trip)}
	}
	n := o.top
	if n <= 0 {
		n = len(candidates)
	}
	ranked := dealgen.Rank(candidates, n)

	fmt.Fprintf(w, "trip %s: %s, %s, %s, %s\n\n", id, trip.Destination, trip.Duration, trip.TravelType, trip.Budget)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tAGENT\tPRICE\tORIGINAL\tSAVINGS %\tSTARS\tCONFIRM\tSCORE\t")
	for i, d := range ranked {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%.1f\t%d\t%s\t%.2f\t\n",
			i+1, d.Agent, d.Price, d.OriginalPrice,
			dealgen.SavingsPercentage(d.Price, d.OriginalPrice),
			d.HotelRating, d.ConfirmationTime, d.ValueScore)
	}
	return tw.Flush()
}

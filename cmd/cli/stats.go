package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/axellelanca/qrlinks/cmd"
	customerrors "github.com/axellelanca/qrlinks/internal/errors"
)

var statsOwnerFlag string

// StatsCmd prints the scan statistics of a link.
var StatsCmd = &cobra.Command{
	Use:   "stats [code]",
	Short: "Shows scan statistics for a short link.",
	Long:  `Shows the total number of scans and the device, browser, OS and country breakdowns of a link.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	StatsCmd.Flags().StringVar(&statsOwnerFlag, "owner", "", "Owner id")
	_ = StatsCmd.MarkFlagRequired("owner")
	cmd.RootCmd.AddCommand(StatsCmd)
}

func runStats(c *cobra.Command, args []string) error {
	code := args[0]

	db, closeDB, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDB()

	linkService, closeCache, err := newLinkService(db)
	if err != nil {
		return err
	}
	defer closeCache()

	link, stats, err := linkService.GetLinkStats(c.Context(), statsOwnerFlag, code)
	if err != nil {
		if errors.Is(err, customerrors.ErrLinkNotFound) {
			return fmt.Errorf("short code %q not found for owner %q", code, statsOwnerFlag)
		}
		return fmt.Errorf("error retrieving statistics: %w", err)
	}

	out := c.OutOrStdout()
	fmt.Fprintf(out, "Statistics for %s\n", cmd.Cfg.ShortURL(link.Code))
	fmt.Fprintf(out, "Destination: %s\n", link.Destination)
	fmt.Fprintf(out, "Active: %t\n", link.Active)
	fmt.Fprintf(out, "Created: %s\n", link.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Total scans: %d\n", stats.TotalScans)
	printBreakdown(out, "Devices", stats.Devices)
	printBreakdown(out, "Browsers", stats.Browsers)
	printBreakdown(out, "OS", stats.OS)
	printBreakdown(out, "Countries", stats.Countries)
	return nil
}

func printBreakdown(out io.Writer, title string, counts map[string]int64) {
	if len(counts) == 0 {
		return
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	fmt.Fprintf(out, "%s:\n", title)
	for _, label := range labels {
		fmt.Fprintf(out, "  %-10s %d\n", label, counts[label])
	}
}

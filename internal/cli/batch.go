package cli

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	cc "github.com/LeJamon/go-crypto-conditions"
)

// batchRow is one verification job: a fulfillment/condition pair and an
// optional message.
type batchRow struct {
	line        int
	fulfillment string
	condition   string
	message     []byte
}

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify many fulfillment/condition pairs concurrently",
	Long: `Verify every row of a file. Each non-empty, non-comment line holds
whitespace-separated fields: <fulfillment-uri> <condition-uri> [hex-message].
Rows are verified concurrently; the command fails if any row fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := readBatchFile(args[0])
		if err != nil {
			return err
		}

		jobs := viper.GetInt("jobs")
		if jobs < 1 {
			jobs = 1
		}
		var g errgroup.Group
		g.SetLimit(jobs)

		failures := make([]error, len(rows))
		for i, row := range rows {
			g.Go(func() error {
				if err := cc.ValidateFulfillment(row.fulfillment, row.condition, row.message); err != nil {
					failures[i] = fmt.Errorf("line %d: %w", row.line, err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		failed := 0
		for _, err := range failures {
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d rows failed", failed, len(rows))
		}
		fmt.Printf("ok: %d rows\n", len(rows))
		return nil
	},
}

func readBatchFile(path string) ([]batchRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []batchRow
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("line %d: expected 2 or 3 fields, got %d", line, len(fields))
		}
		row := batchRow{line: line, fulfillment: fields[0], condition: fields[1]}
		if len(fields) == 3 {
			row.message, err = hex.DecodeString(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid hex message: %w", line, err)
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func init() {
	batchCmd.Flags().Int("jobs", 4, "maximum concurrent verifications")
	viper.BindPFlag("jobs", batchCmd.Flags().Lookup("jobs"))
	rootCmd.AddCommand(batchCmd)
}

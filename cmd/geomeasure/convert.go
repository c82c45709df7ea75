package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"geomeasure/internal/measure"
)

var (
	convFrom string
	convTo   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <value>",
	Short: "Convert a measurement label between units",
	Long: `convert takes a value as shown in the tooltip, e.g. "1113.19 meters" or
"(+0.69 mi)", and prints it in the --to unit. A bare number needs --from.`,
	Example: `  geomeasure convert "1113.19 meters" --to mi
  geomeasure convert 2.47 --from acres --to ha`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convFrom, "from", "", "source unit when the value carries none")
	convertCmd.Flags().StringVar(&convTo, "to", "", "target unit")
	_ = convertCmd.MarkFlagRequired("to")
}

var errNoValue = errors.New("no two-decimal value found")

func convertLabel(text, from, to string) (string, error) {
	v, u, ok := measure.ParseDisplayed(text)
	if !ok {
		return "", fmt.Errorf("%w in %q", errNoValue, text)
	}
	if from != "" {
		pu, err := measure.ParseUnit(from)
		if err != nil {
			return "", err
		}
		u = pu
	}
	if u == "" {
		return "", errors.New("value has no unit; pass --from")
	}
	target, err := measure.ParseUnit(to)
	if err != nil {
		return "", err
	}
	var out float64
	if u.IsArea() {
		out, err = measure.ConvertArea(v, u, target)
	} else {
		out, err = measure.ConvertDistance(v, u, target)
	}
	if err != nil {
		return "", err
	}
	return measure.FormatValue(out, target), nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := convertLabel(args[0], convFrom, convTo)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/clockface/internal/output"
)

var anglesCmd = &cobra.Command{
	Use:   "angles",
	Short: "Print the hand angles for a time",
	Long: `Print the hour, minute and second hand angles in radians and degrees.

Angles are measured from three o'clock, counter-clockwise positive, so a
hand pointing at twelve is at 90 degrees.

Examples:
  clockface angles
  clockface angles --at 10:10:30 --tz UTC --format json`,
	RunE: runAngles,
}

func init() {
	rootCmd.AddCommand(anglesCmd)
	addTimeFlags(anglesCmd)
}

func runAngles(cmd *cobra.Command, args []string) error {
	at, err := resolveTime(cmd)
	if err != nil {
		return err
	}
	return output.Print(output.NewAnglesResult(at))
}

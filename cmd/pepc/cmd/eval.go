package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pepc/pepc"
)

func newEvalCmd() *cobra.Command {
	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate the arbitration of one request vector.",
		Long: `eval resolves the winning channel of a request vector under a ` +
			`control word and prints the status and data words the core ` +
			`would present. Values accept 0x and 0b prefixes.`,
		Args: cobra.NoArgs,
		RunE: runEval,
	}

	evalCmd.Flags().String("request", "0", "request vector, 8 bits")
	evalCmd.Flags().String("control", "0",
		"control word, 3 bits: bit 1 direction, bit 2 parity mode")

	return evalCmd
}

func runEval(cmd *cobra.Command, _ []string) error {
	overflow, err := readOverflow(cmd)
	if err != nil {
		return err
	}

	reqStr, _ := cmd.Flags().GetString("request")
	req, err := parseByte("request", reqStr, 0xff)
	if err != nil {
		return err
	}

	ctrlStr, _ := cmd.Flags().GetString("control")
	ctrl, err := parseByte("control", ctrlStr, 0b111)
	if err != nil {
		return err
	}

	logic := pepc.DefaultLogic()
	logic.Overflow = overflow

	request := pepc.RequestVector(req)
	control := pepc.ControlWord(ctrl)
	winner := pepc.Resolve(request, control.Direction())
	out := logic.Evaluate(request, control)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "request  %s\n", request)
	fmt.Fprintf(w, "control  %s (%s priority, %s parity)\n",
		control, control.Direction(), control.ParityMode())
	fmt.Fprintf(w, "winner   %s\n", winner)
	fmt.Fprintf(w, "status   %s\n", out.Status)
	fmt.Fprintf(w, "data     %s\n", out.Data)

	return nil
}

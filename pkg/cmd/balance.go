package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/fugotrade/fugo/pkg/style"
)

var balanceCmd = &cobra.Command{
	Use:          "balance",
	Short:        "show the futures wallet balance",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		t, _, err := newTrader()
		if err != nil {
			return err
		}

		account, err := t.QueryAccount(ctx)
		if err != nil {
			return err
		}

		w := style.NewTableWriter(os.Stdout)
		w.AppendHeader(toRow("WALLET", "UNREALIZED PNL", "MARGIN BALANCE", "AVAILABLE"))
		w.AppendRow(toRow(
			account.TotalWalletBalance.FormatString(2),
			account.TotalUnrealizedProfit.FormatString(2),
			account.TotalMarginBalance.FormatString(2),
			account.AvailableBalance.FormatString(2)))
		w.Render()
		return nil
	},
}

func init() {
	RootCmd.AddCommand(balanceCmd)
}

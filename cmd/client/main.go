// Command client is a cobra-based CLI for fenrir's TCP command protocol,
// replacing the teacher's flat flag.String-based client with subcommands
// per spec.md §6's six command variants plus the debug log-book command.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"fenrir/internal/wire"
)

var serverAddr string

func main() {
	root := &cobra.Command{
		Use:   "fenrirctl",
		Short: "Command-line client for the fenrir matching engine",
	}
	root.PersistentFlags().StringVar(&serverAddr, "server", "127.0.0.1:9001", "address of the exchange server")

	root.AddCommand(placeCmd(), cancelCmd(), depthCmd(), balanceCmd(), addFundsCmd(), logBookCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func placeCmd() *cobra.Command {
	var user, side, price, qty, orderType string
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place a limit or market order",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			s, err := parseSide(side)
			if err != nil {
				return err
			}

			if orderType == "market" {
				buf := make([]byte, 2+16+1+2+len(qty))
				copy(buf, header(wire.NewMarketOrder))
				putUUID(buf, 2, userID)
				buf[18] = byte(s)
				putLenPrefixedString(buf, 19, qty)
				return sendAndPrint(serverAddr, buf)
			}

			buf := make([]byte, 2+16+1+2+len(price)+2+len(qty))
			copy(buf, header(wire.NewLimitOrder))
			putUUID(buf, 2, userID)
			buf[18] = byte(s)
			offset := putLenPrefixedString(buf, 19, price)
			putLenPrefixedString(buf, offset, qty)
			return sendAndPrint(serverAddr, buf)
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id (uuid)")
	cmd.Flags().StringVar(&side, "side", "buy", "buy|sell")
	cmd.Flags().StringVar(&orderType, "type", "limit", "limit|market")
	cmd.Flags().StringVar(&price, "price", "0", "limit price (decimal string, ignored for market)")
	cmd.Flags().StringVar(&qty, "qty", "", "quantity (decimal string)")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("qty")
	return cmd
}

func cancelCmd() *cobra.Command {
	var user, order string
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a resting order",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			orderID, err := uuid.Parse(order)
			if err != nil {
				return fmt.Errorf("invalid --order: %w", err)
			}
			buf := make([]byte, 2+32)
			copy(buf, header(wire.CancelOrder))
			putUUID(buf, 2, userID)
			putUUID(buf, 18, orderID)
			return sendAndPrint(serverAddr, buf)
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id (uuid)")
	cmd.Flags().StringVar(&order, "order", "", "order id (uuid)")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("order")
	return cmd
}

func depthCmd() *cobra.Command {
	var n int32
	cmd := &cobra.Command{
		Use:   "depth",
		Short: "Show the top-n price levels on each side",
		RunE: func(cmd *cobra.Command, args []string) error {
			buf := make([]byte, 2+4)
			copy(buf, header(wire.GetDepth))
			putInt32(buf, 2, n)
			return sendAndPrint(serverAddr, buf)
		},
	}
	cmd.Flags().Int32Var(&n, "levels", 10, "number of price levels per side")
	return cmd
}

func balanceCmd() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show a user's free and locked balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			buf := make([]byte, 2+16)
			copy(buf, header(wire.GetBalance))
			putUUID(buf, 2, userID)
			return sendAndPrint(serverAddr, buf)
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id (uuid)")
	cmd.MarkFlagRequired("user")
	return cmd
}

func addFundsCmd() *cobra.Command {
	var user, currency, amount string
	cmd := &cobra.Command{
		Use:   "add-funds",
		Short: "Credit a user's free balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			buf := make([]byte, 2+16+3+2+len(amount))
			copy(buf, header(wire.AddFunds))
			putUUID(buf, 2, userID)
			copy(buf[18:21], currency)
			putLenPrefixedString(buf, 21, amount)
			return sendAndPrint(serverAddr, buf)
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id (uuid)")
	cmd.Flags().StringVar(&currency, "currency", "USD", "USD|BTC")
	cmd.Flags().StringVar(&amount, "amount", "", "amount (decimal string)")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func logBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log-book",
		Short: "Ask the server to log a depth snapshot (debug command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendAndPrint(serverAddr, header(wire.LogBook))
		},
	}
}

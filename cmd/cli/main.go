package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bankd-cli",
		Short: "bankd CLI tool",
		Long:  `A command line interface for interacting with the bankd API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the bankd API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/accounts")
		},
	})

	var ownerName, email, startingBalance string
	createAccountCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/accounts", map[string]any{
				"ownerName":       ownerName,
				"email":           email,
				"startingBalance": json.Number(startingBalance),
			})
		},
	}
	createAccountCmd.Flags().StringVar(&ownerName, "owner", "", "Account owner name")
	createAccountCmd.Flags().StringVar(&email, "email", "", "Account owner email")
	createAccountCmd.Flags().StringVar(&startingBalance, "balance", "0", "Starting balance")
	_ = createAccountCmd.MarkFlagRequired("owner")
	_ = createAccountCmd.MarkFlagRequired("email")
	accountsCmd.AddCommand(createAccountCmd)

	transactionsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction operations",
	}

	var userID string
	listTransactionsCmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/transactions"
			if userID != "" {
				path = "/api/transactions/user/" + userID
			}
			getJSON(path)
		},
	}
	listTransactionsCmd.Flags().StringVar(&userID, "user", "", "Filter by user ID")
	transactionsCmd.AddCommand(listTransactionsCmd)

	var senderID, receiverID, amount, description string
	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Transfer funds between accounts",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/transactions", map[string]any{
				"senderId":    senderID,
				"receiverId":  receiverID,
				"amount":      json.Number(amount),
				"description": description,
			})
		},
	}
	sendCmd.Flags().StringVar(&senderID, "from", "", "Sender account ID")
	sendCmd.Flags().StringVar(&receiverID, "to", "", "Receiver account ID")
	sendCmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	sendCmd.Flags().StringVar(&description, "description", "", "Transfer description")
	_ = sendCmd.MarkFlagRequired("from")
	_ = sendCmd.MarkFlagRequired("to")
	_ = sendCmd.MarkFlagRequired("amount")
	transactionsCmd.AddCommand(sendCmd)

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/ready")
		},
	}

	rootCmd.AddCommand(accountsCmd, transactionsCmd, healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func postJSON(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}

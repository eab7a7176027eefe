package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	clubsCmd.AddCommand(clubsListCmd)
	clubsCmd.AddCommand(clubsSetStarsCmd)
	clubsCmd.AddCommand(clubsClearStarsCmd)
}

var clubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "Inspect the club catalog and its star overrides",
}

var clubsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every club with overrides applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/clubs", nil)
	},
}

var clubsSetStarsCmd = &cobra.Command{
	Use:   "set-stars <club-id> <stars>",
	Short: "Override the star rating of a club",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stars, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid star rating %q: %w", args[1], err)
		}
		return performRequest(http.MethodPut, "/api/clubs/"+args[0]+"/stars", map[string]float64{"stars": stars})
	},
}

var clubsClearStarsCmd = &cobra.Command{
	Use:   "clear-stars <club-id>",
	Short: "Remove the star override of a club",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/api/clubs/"+args[0]+"/stars", nil)
	},
}

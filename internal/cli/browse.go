package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/spot/internal/app"
	"github.com/tessro/spot/internal/browser"
	spoterrors "github.com/tessro/spot/internal/errors"
	"github.com/tessro/spot/internal/spotify/client"
)

var browseLimit int

var browseCmd = &cobra.Command{
	Use:   "browse QUERY",
	Short: "Search albums and load them into the browser",
	Long: `Searches Spotify for albums matching QUERY and feeds the results to the
browser state, printing the events produced and the resulting album list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().IntVarP(&browseLimit, "limit", "n", 20, "maximum number of albums")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if !sess.client.HasToken() {
		return spoterrors.WithSuggestion(spoterrors.ErrNotAuthenticated, "Run 'spot auth login' to store credentials")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	results, err := sess.client.SearchAlbums(ctx, query, browseLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	err = applyAndPrint(cmd, sess,
		app.BrowserAction{Action: browser.Search{Query: query}},
		app.BrowserAction{Action: browser.SetContent{Albums: toBrowserAlbums(results)}},
	)
	if err != nil {
		return err
	}

	albums := sess.model.State().Browser.Albums
	out := cmd.OutOrStdout()
	if JSONOutput() {
		data, _ := json.MarshalIndent(albums, "", "  ")
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(albums) == 0 {
		fmt.Fprintf(out, "No albums found for %q\n", query)
		return nil
	}

	table := NewTableWriter(out, "TITLE", "ARTIST", "URI")
	for _, a := range albums {
		table.Row(TruncateString(a.Title, 40), TruncateString(a.Artist, 30), a.URI)
	}
	table.Flush()
	return nil
}

// toBrowserAlbums converts search results to browser entries. The artist is
// the comma-joined artist list and the cover is the first (largest) image.
func toBrowserAlbums(results []client.Album) []browser.Album {
	albums := make([]browser.Album, 0, len(results))
	for _, r := range results {
		names := make([]string, 0, len(r.Artists))
		for _, a := range r.Artists {
			names = append(names, a.Name)
		}
		album := browser.Album{
			URI:    r.URI,
			Title:  r.Name,
			Artist: strings.Join(names, ", "),
		}
		if len(r.Images) > 0 {
			album.CoverURL = r.Images[0].URL
		}
		albums = append(albums, album)
	}
	return albums
}

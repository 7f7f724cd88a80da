package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"docdiff.io/server"
)

var (
	serveAddr string
	serveType string
)

var serveCmd = &cobra.Command{
	Use:   "serve <left> <right>",
	Short: "Serve the comparison over HTTP and re-compare when the files change",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		leftPath, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving path: %v", err)
		}
		rightPath, err := filepath.Abs(args[1])
		if err != nil {
			return fmt.Errorf("resolving path: %v", err)
		}

		session, err := loadSession(leftPath, rightPath)
		if err != nil {
			return fmt.Errorf("loading session: %v", err)
		}

		// Start serving.
		srv, err := server.Run(serveAddr, session)
		if err != nil {
			return err
		}
		defer srv.Shutdown(context.Background())
		log.Printf("Now serving at http://%s, press Ctrl-C to shut down", serveAddr)

		// Watch the parent directories rather than the files themselves:
		// editors that replace files on save would otherwise break the
		// watch on the first write.
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("starting watcher: %v", err)
		}
		defer watcher.Close()
		dirs := map[string]bool{}
		for _, p := range []string{leftPath, rightPath} {
			dir := filepath.Dir(p)
			if dirs[dir] {
				continue
			}
			dirs[dir] = true
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("starting watch: %v", err)
			}
		}

		// Setup signals to react to Ctrl-C.
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)

		for {
			select {
			case event := <-watcher.Events:
				if event.Has(fsnotify.Chmod) {
					continue
				}
				if event.Name != leftPath && event.Name != rightPath {
					continue
				}

				start := time.Now()
				session, err := loadSession(leftPath, rightPath)
				if err != nil {
					log.Printf("failed to update comparison: %v", err)
					continue
				}
				srv.ReplaceSession(session)
				log.Printf("Comparison reloaded (%v)", time.Since(start))
			case err := <-watcher.Errors:
				return fmt.Errorf("watching: %v", err)
			case err := <-srv.Error():
				return fmt.Errorf("serving: %v", err)
			case <-sigint:
				fmt.Print("\r") // remove Ctrl-C output characters
				log.Printf("Received Ctrl-C, shutting down")
				return nil
			}
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "address to serve on")
	serveCmd.Flags().StringVar(&serveType, "type", "", "content type: json or markdown (default: inferred from the file extension)")
}

func loadSession(leftPath, rightPath string) (*server.Session, error) {
	left, err := os.ReadFile(leftPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v", leftPath, err)
	}
	right, err := os.ReadFile(rightPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v", rightPath, err)
	}

	title := fmt.Sprintf("%s vs %s", filepath.Base(leftPath), filepath.Base(rightPath))
	session, err := server.NewSession(title, string(left), string(right), contentType(serveType, leftPath))
	if err != nil {
		return nil, err
	}
	session.LeftName = filepath.Base(leftPath)
	session.RightName = filepath.Base(rightPath)
	return session, nil
}

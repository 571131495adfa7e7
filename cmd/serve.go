package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/TheFriendlyCoder/friendlyshell/core/config"
	"github.com/TheFriendlyCoder/friendlyshell/core/lineedit"
	"github.com/TheFriendlyCoder/friendlyshell/core/logger"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the demo shell over SSH on a local port.",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		log.Println("Initializing server...")

		dir, err := config.Folder(afero.NewOsFs())
		if err != nil {
			return err
		}
		signer, err := ensureHostKey(filepath.Join(dir, "host_key"))
		if err != nil {
			return err
		}

		server := &ssh.Server{
			Addr:    fmt.Sprintf(":%d", servePort),
			Handler: handleSession,
		}
		server.AddHostKey(signer)

		go func() {
			log.Printf("- Starting SSH server on %s\n", server.Addr)
			if err := server.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
				log.Fatal(err)
			}
		}()

		sigs := make(chan os.Signal, 1)

		log.Println("- Starting interrupt handler")
		signal.Notify(sigs, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigs
		log.Printf("Got signal %q, terminating...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server shutdown failed: %s", err)
		}
		log.Print("Server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 2222, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

// handleSession runs one demo shell per SSH session, attached to the
// session's streams and tracking window resizes.
func handleSession(sess ssh.Session) {
	ptyInfo, winch, isPty := sess.Pty()

	width := int32(ptyInfo.Window.Width)
	go func() {
		for window := range winch {
			atomic.StoreInt32(&width, int32(window.Width))
		}
	}()

	ed, err := lineedit.NewReadline(lineedit.Options{
		Stdin:  sess,
		Stdout: sess,
		Stderr: sess.Stderr(),
		IsTerminal: func() bool {
			return isPty
		},
		Width: func() int {
			return int(atomic.LoadInt32(&width))
		},
	})
	if err != nil {
		fmt.Fprintf(sess.Stderr(), "failed to open terminal: %v\n", err)
		sess.Exit(1)
		return
	}
	defer ed.Close()

	sessionLog := &logger.Console{
		Out:   sess,
		Err:   sess.Stderr(),
		Color: isPty,
	}

	// No history file server side: each session starts with a clean
	// recall buffer.
	shell := newDemoShell(ed, sessionLog, "")
	shell.Prompt = fmt.Sprintf("%s@friendlyshell> ", sess.User())

	if err := shell.Run(nil); err != nil {
		fmt.Fprintf(sess.Stderr(), "session failed: %v\n", err)
		sess.Exit(1)
		return
	}
	sess.Exit(0)
}

// mount.go implements the mount command: attach the tag store as a FUSE
// filesystem at a directory and block until unmounted.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jamesblissett/tagfs/internal/log"
	"github.com/jamesblissett/tagfs/internal/mount"
	"github.com/spf13/cobra"
)

var (
	mountDebug      bool
	mountAllowOther bool
)

func init() {
	c := newMountCmd()
	c.Flags().BoolVar(&mountDebug, "debug", false, "Log FUSE protocol traffic")
	c.Flags().BoolVar(&mountAllowOther, "allow-other", false, "Allow other users to access the mount")
	rootCmd.AddCommand(c)
}

func newMountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mount <directory>",
		Short: "Mount the tag store as a virtual filesystem",
		Args:  cobra.ExactArgs(1),
		RunE:  runMount,
	}
}

func runMount(c *cobra.Command, args []string) error {
	dir := args[0]

	_, handler, err := Service()
	if err != nil {
		return PrintJSONError(fmt.Errorf("open store: %w", err))
	}

	server, err := mount.Mount(dir, handler, mount.Config{
		Debug:      mountDebug,
		AllowOther: mountAllowOther,
	})
	if err != nil {
		log.Event("cmd:mount", "mount").Author(Author()).Path(dir).Write(err)
		return PrintJSONError(asMountFailure(fmt.Errorf("mount %q: %w", dir, err)))
	}
	log.Event("cmd:mount", "mount").Author(Author()).Path(dir).Write(nil)

	fmt.Fprintf(Out(), "mounted at %s (ctrl-c to unmount)\n", dir)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		_ = server.Unmount()
	}()

	server.Wait()
	return nil
}

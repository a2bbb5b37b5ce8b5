// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/devblok/litecraft/utility/kar"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/mmap"
)

func currentUserName() string {
	u, err := user.Current()
	if err != nil || u.Name == "" {
		return "unknown"
	}
	return u.Name
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kar",
		Short:         "Create and inspect kar resource archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("silent", "s", false, "Silent")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if silent, _ := cmd.Flags().GetBool("silent"); silent {
			log.SetLevel(log.WarnLevel)
		}
	}

	root.AddCommand(newPackCmd(), newListCmd(), newExtractCmd())
	return root
}

func newPackCmd() *cobra.Command {
	var (
		author  string
		version int64
		dstFile string
	)
	cmd := &cobra.Command{
		Use:   "pack <dir>",
		Short: "Compress the given folder into an archive",
		Long: "Compress the given folder into an archive. Files are stored by their\n" +
			"slash separated path relative to the folder, so an assets folder laid out\n" +
			"as namespace/path can be used as a resource archive directly.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return compressFiles(args[0], dstFile, author, version)
		},
	}
	cmd.Flags().StringVar(&author, "author", currentUserName(), "Set the author of the package when compressing")
	cmd.Flags().Int64Var(&version, "version", 1, "Archive version number to create it with")
	cmd.Flags().StringVarP(&dstFile, "file", "f", "out.kar", "Destination file")
	return cmd
}

func compressFiles(root, dstFile, author string, version int64) error {
	if _, err := os.Stat(dstFile); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	karBuilder, err := kar.NewBuilder(kar.Header{
		Author:      author,
		DateCreated: time.Now().Unix(),
		Version:     version,
	})
	if err != nil {
		return err
	}
	defer karBuilder.Close()

	if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		log.WithField("file", filepath.ToSlash(rel)).Info("adding")
		return karBuilder.Add(filepath.ToSlash(rel), f)
	}); err != nil {
		return err
	}

	dst, err := os.Create(dstFile)
	if err != nil {
		return err
	}
	defer dst.Close()

	written, err := karBuilder.WriteTo(dst)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"file":    dstFile,
		"written": written,
	}).Info("archive created")
	return dst.Sync()
}

func openArchive(name string) (*kar.Archive, *mmap.ReaderAt, error) {
	r, err := mmap.Open(name)
	if err != nil {
		return nil, nil, err
	}
	ar, err := kar.Open(r)
	if err != nil {
		r.Close()
		return nil, nil, err
	}
	return ar, r, nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <archive>",
		Short: "List the files of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ar, r, err := openArchive(args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			header := ar.Header()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "author %s, version %d, created %s\n",
				header.Author, header.Version, time.Unix(header.DateCreated, 0).Format(time.RFC3339))
			for _, e := range header.Index {
				fmt.Fprintf(out, "%10d %10d %s\n", e.Size, e.CompressedSize, e.Name)
			}
			return nil
		},
	}
}

func newExtractCmd() *cobra.Command {
	var dstDir string
	cmd := &cobra.Command{
		Use:   "extract <archive>",
		Short: "Extract every file of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ar, r, err := openArchive(args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			for _, e := range ar.Header().Index {
				dst := filepath.Join(dstDir, filepath.FromSlash(e.Name))
				if !filepath.IsLocal(filepath.FromSlash(e.Name)) {
					return fmt.Errorf("refusing to extract %q outside of %s", e.Name, dstDir)
				}
				data, err := ar.ReadAll(e.Name)
				if err != nil {
					return err
				}
				if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
					return err
				}
				if err := os.WriteFile(dst, data, 0o644); err != nil {
					return err
				}
				log.WithField("file", e.Name).Info("extracted")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dstDir, "dir", "d", ".", "Destination directory")
	return cmd
}

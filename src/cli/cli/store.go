// MIT License
//
// # Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/cli/cli/store.go
package cli

import (
	"fmt"

	"github.com/sphinx-core/spx/src/core/sphincs/key/disk"
	"github.com/spf13/cobra"
)

func newStoreCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the local keystore",
	}
	cmd.AddCommand(
		newStoreImportCmd(e),
		newStoreExportCmd(e),
		newStoreListCmd(e),
		newStoreDeleteCmd(e),
	)
	return cmd
}

func (e *env) openStore() (*disk.Store, error) {
	return disk.Open(e.cfg.Keystore, e.km)
}

func newStoreImportCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a keypair, public key or signature file under a name",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			keyPath, _ := cmd.Flags().GetString("key")
			pubPath, _ := cmd.Flags().GetString("pub")
			sigPath, _ := cmd.Flags().GetString("sig")
			if keyPath == "" && pubPath == "" && sigPath == "" {
				return fmt.Errorf("one of --key, --pub or --sig is required")
			}

			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if keyPath != "" {
				kp, err := e.readKeyPair(keyPath)
				if err != nil {
					return err
				}
				if err := s.PutKeyPair(name, kp); err != nil {
					return err
				}
			}
			if pubPath != "" {
				pub, err := e.readPublicKey(pubPath)
				if err != nil {
					return err
				}
				if err := s.PutPublicKey(name, pub); err != nil {
					return err
				}
			}
			if sigPath != "" {
				sig, err := e.readSignature(sigPath)
				if err != nil {
					return err
				}
				if err := s.PutSignature(name, sig); err != nil {
					return err
				}
			}
			cmd.Printf("Imported %q\n", name)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Record name")
	cmd.Flags().String("key", "", "Keypair file")
	cmd.Flags().String("pub", "", "Public key file")
	cmd.Flags().String("sig", "", "Signature file")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newStoreExportCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-pub",
		Short: "Write the public key stored under a name",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			out, _ := cmd.Flags().GetString("out")

			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			pub, err := s.PublicKey(name)
			if err != nil {
				return err
			}
			return e.writePublicKey(out, pub)
		},
	}
	cmd.Flags().String("name", "", "Record name")
	cmd.Flags().String("out", "", "Public key output file")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newStoreListCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored names",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			for _, kind := range []disk.Kind{disk.KindKeyPair, disk.KindPublicKey, disk.KindSignature} {
				names, err := s.List(kind)
				if err != nil {
					return err
				}
				for _, name := range names {
					cmd.Printf("%s\t%s\n", kind, name)
				}
			}
			return nil
		},
	}
	return cmd
}

func newStoreDeleteCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete every record stored under a name",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")

			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Delete(name)
		},
	}
	cmd.Flags().String("name", "", "Record name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

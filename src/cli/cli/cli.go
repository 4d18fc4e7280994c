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

// go/src/cli/cli/cli.go
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sphinx-core/spx/src/common"
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
	key "github.com/sphinx-core/spx/src/core/sphincs/key/backend"
	logger "github.com/sphinx-core/spx/src/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute runs the spxtool command line.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the spxtool command tree with its own configuration.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SPXTOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	e := &env{}
	root := &cobra.Command{
		Use:           "spxtool",
		Short:         "Generate SPHINCS+ keys, sign and verify messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(v)
		},
	}

	flags := root.PersistentFlags()
	flags.String(keyParams, params.Default().Name, "Parameter set ("+strings.Join(params.Names(), ", ")+")")
	flags.Bool(keyArmor, false, "Read and write PEM armored files")
	flags.String(keyKeystore, common.GetKeystorePath(), "LevelDB keystore directory")
	flags.Bool(keyVerbose, false, "Enable debug logging")
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		newKeygenCmd(e),
		newPubkeyCmd(e),
		newSignCmd(e),
		newVerifyCmd(e),
		newShowCmd(e),
		newStoreCmd(e),
	)
	return root
}

func (e *env) load(v *viper.Viper) error {
	ps, err := params.Lookup(v.GetString(keyParams))
	if err != nil {
		return err
	}
	e.cfg = Config{
		Params:   ps,
		Armor:    v.GetBool(keyArmor),
		Keystore: v.GetString(keyKeystore),
		Verbose:  v.GetBool(keyVerbose),
	}
	if e.cfg.Verbose {
		logger.SetLevel(logger.DEBUG)
	}

	km, err := key.NewKeyManagerFor(ps)
	if err != nil {
		return fmt.Errorf("failed to initialize key manager: %w", err)
	}
	e.km = km
	return nil
}

func newKeygenCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a keypair",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			pubOut, _ := cmd.Flags().GetString("pub-out")
			if out == "" {
				return fmt.Errorf("--out is required")
			}

			kp, err := e.km.GenerateKey()
			if err != nil {
				return err
			}
			if err := e.writeKeyPair(out, kp); err != nil {
				return err
			}
			if pubOut != "" {
				if err := e.writePublicKey(pubOut, kp.Public()); err != nil {
					return err
				}
			}
			cmd.Printf("Generated %s keypair %s\n", e.cfg.Params.Name, kp.Fingerprint())
			return nil
		},
	}
	cmd.Flags().String("out", "", "Keypair output file")
	cmd.Flags().String("pub-out", "", "Optional public key output file")
	return cmd
}

func newPubkeyCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Extract the public key of a keypair",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyPath, _ := cmd.Flags().GetString("key")
			out, _ := cmd.Flags().GetString("out")
			kp, err := e.readKeyPair(keyPath)
			if err != nil {
				return err
			}
			return e.writePublicKey(out, kp.IntoPublicKey())
		},
	}
	cmd.Flags().String("key", "", "Keypair file")
	cmd.Flags().String("out", "", "Public key output file")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newSignCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyPath, _ := cmd.Flags().GetString("key")
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")

			kp, err := e.readKeyPair(keyPath)
			if err != nil {
				return err
			}
			msg, err := readMessage(cmd, in)
			if err != nil {
				return err
			}
			sig, err := kp.Sign(msg)
			if err != nil {
				return err
			}
			return e.writeSignature(out, sig)
		},
	}
	cmd.Flags().String("key", "", "Keypair file")
	cmd.Flags().String("in", "-", "Message file, - for stdin")
	cmd.Flags().String("out", "", "Signature output file")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newVerifyCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a message signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			pubPath, _ := cmd.Flags().GetString("pub")
			in, _ := cmd.Flags().GetString("in")
			sigPath, _ := cmd.Flags().GetString("sig")

			pub, err := e.readPublicKey(pubPath)
			if err != nil {
				return err
			}
			sig, err := e.readSignature(sigPath)
			if err != nil {
				return err
			}
			msg, err := readMessage(cmd, in)
			if err != nil {
				return err
			}
			if err := pub.Verify(msg, sig); err != nil {
				return err
			}
			cmd.Println("Signature OK")
			return nil
		},
	}
	cmd.Flags().String("pub", "", "Public key file")
	cmd.Flags().String("in", "-", "Message file, - for stdin")
	cmd.Flags().String("sig", "", "Signature file")
	_ = cmd.MarkFlagRequired("pub")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}

func newShowCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a public key fingerprint or a signature in decimal",
		RunE: func(cmd *cobra.Command, args []string) error {
			pubPath, _ := cmd.Flags().GetString("pub")
			pubHex, _ := cmd.Flags().GetString("pub-hex")
			sigPath, _ := cmd.Flags().GetString("sig")
			if pubPath == "" && pubHex == "" && sigPath == "" {
				return fmt.Errorf("one of --pub, --pub-hex or --sig is required")
			}
			if pubPath != "" {
				pub, err := e.readPublicKey(pubPath)
				if err != nil {
					return err
				}
				cmd.Printf("%s %s\n", pub.Fingerprint(), common.Bytes2Hex(pub.Bytes()))
			}
			if pubHex != "" {
				raw, err := common.HexToBytesWithoutPrefix(pubHex)
				if err != nil {
					return fmt.Errorf("decode --pub-hex: %w", err)
				}
				pub, err := e.km.UnmarshalPublicKey(raw)
				if err != nil {
					return err
				}
				cmd.Printf("%s %s\n", pub.Fingerprint(), common.Bytes2Hex(pub.Bytes()))
			}
			if sigPath != "" {
				sig, err := e.readSignature(sigPath)
				if err != nil {
					return err
				}
				cmd.Println(sig.String())
			}
			return nil
		},
	}
	cmd.Flags().String("pub", "", "Public key file")
	cmd.Flags().String("pub-hex", "", "Public key as hex, with or without 0x")
	cmd.Flags().String("sig", "", "Signature file")
	return cmd
}

func readMessage(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	msg, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}
	return msg, nil
}

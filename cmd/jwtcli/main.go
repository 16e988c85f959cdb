// Command jwtcli signs and verifies JSON Web Tokens from the shell,
// reading claims and keys as JSON files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	jwt "github.com/openprinting/go-jwt"
	"github.com/openprinting/go-jwt/internal/jsontree"
)

var rootCmd = &cobra.Command{
	Use:   "jwtcli",
	Short: "Sign and verify JWS compact-serialization tokens",
}

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a claim set and print the compact serialization",
	RunE:  runSign,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a token's signature against a JWK",
	RunE:  runVerify,
}

func init() {
	signCmd.Flags().String("claims", "", "path to a JSON file containing the claim set")
	signCmd.Flags().String("key", "", "path to a JWK JSON file")
	signCmd.Flags().String("alg", string(jwt.HS256), "signing algorithm (HS256/384/512, RS256/384/512, ES256/384/512)")
	_ = signCmd.MarkFlagRequired("claims")
	_ = signCmd.MarkFlagRequired("key")

	verifyCmd.Flags().String("token", "", "the compact serialization to verify")
	verifyCmd.Flags().String("key", "", "path to a JWK JSON file")
	_ = verifyCmd.MarkFlagRequired("token")
	_ = verifyCmd.MarkFlagRequired("key")

	rootCmd.AddCommand(signCmd, verifyCmd)
}

func loadJWK(path string) (*jsontree.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jsontree.Parse(string(data))
}

func runSign(cmd *cobra.Command, _ []string) error {
	claimsPath, _ := cmd.Flags().GetString("claims")
	keyPath, _ := cmd.Flags().GetString("key")
	alg, _ := cmd.Flags().GetString("alg")

	claimsData, err := os.ReadFile(claimsPath)
	if err != nil {
		return err
	}

	claims, err := jsontree.Parse(string(claimsData))
	if err != nil {
		return fmt.Errorf("parsing claims: %w", err)
	}

	jwk, err := loadJWK(keyPath)
	if err != nil {
		return fmt.Errorf("loading key: %w", err)
	}

	token := jwt.New("JWT")
	dst := token.GetClaims()
	for _, name := range claims.Keys() {
		v, _ := claims.Find(name)
		if err := dst.SetRaw(name, v.Raw()); err != nil {
			return fmt.Errorf("copying claim %q: %w", name, err)
		}
	}

	if err := token.Sign(jwt.Algorithm(alg), jwk); err != nil {
		return fmt.Errorf("signing: %w", err)
	}

	out, err := token.ExportString()
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}

func runVerify(cmd *cobra.Command, _ []string) error {
	tokenStr, _ := cmd.Flags().GetString("token")
	keyPath, _ := cmd.Flags().GetString("key")

	token, err := jwt.Import(tokenStr)
	if err != nil {
		return fmt.Errorf("parsing token: %w", err)
	}

	jwk, err := loadJWK(keyPath)
	if err != nil {
		return fmt.Errorf("loading key: %w", err)
	}

	ok, err := token.HasValidSignature(jwk)
	if err != nil {
		return err
	}

	if !ok {
		fmt.Println("invalid")
		os.Exit(1)
	}

	fmt.Println("valid")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

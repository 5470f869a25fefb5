package toolset

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/app/configuration"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/iota-txpool/pkg/jwt"
)

func generateIdentity(args []string) error {
	fs := configuration.NewUnsortedFlagSet("", flag.ContinueOnError)
	outputJSONFlag := fs.Bool(FlagToolOutputJSON, false, FlagToolDescriptionOutputJSON)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", ToolIdentityGen)
		fs.PrintDefaults()
		println(fmt.Sprintf("\nexample: %s --%s", ToolIdentityGen, FlagToolOutputJSON))
	}

	if err := parseFlagSet(fs, args); err != nil {
		return err
	}

	seed, err := jwt.GenerateIdentitySeed()
	if err != nil {
		return err
	}

	privateKey, err := jwt.IdentityFromSeed(seed)
	if err != nil {
		return err
	}

	if *outputJSONFlag {
		return printJSON(struct {
			IdentitySeed string `json:"identitySeed"`
			NodeID       string `json:"nodeId"`
		}{
			IdentitySeed: seed,
			NodeID:       jwt.NodeID(privateKey),
		})
	}

	fmt.Println("Your identity seed: ", seed)
	fmt.Println("Your node ID:       ", jwt.NodeID(privateKey))

	return nil
}

func generateJWTApiToken(args []string) error {
	fs := configuration.NewUnsortedFlagSet("", flag.ContinueOnError)
	identitySeedFlag := fs.String(FlagToolIdentitySeed, "", "the base58 encoded seed configured in 'restAPI.jwtAuth.identitySeed'")
	apiJWTSaltFlag := fs.String(FlagToolSalt, DefaultValueAPIJWTTokenSalt, "salt used inside the JWT tokens for the REST API")
	outputJSONFlag := fs.Bool(FlagToolOutputJSON, false, FlagToolDescriptionOutputJSON)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", ToolJWTApi)
		fs.PrintDefaults()
		println(fmt.Sprintf("\nexample: %s --%s %s --%s %s",
			ToolJWTApi,
			FlagToolIdentitySeed,
			"[SEED]",
			FlagToolSalt,
			DefaultValueAPIJWTTokenSalt))
	}

	if err := parseFlagSet(fs, args); err != nil {
		return err
	}

	if len(*identitySeedFlag) == 0 {
		return ierrors.Errorf("'%s' not specified", FlagToolIdentitySeed)
	}
	if len(*apiJWTSaltFlag) == 0 {
		return ierrors.Errorf("'%s' not specified", FlagToolSalt)
	}

	privateKey, err := jwt.IdentityFromSeed(*identitySeedFlag)
	if err != nil {
		return ierrors.Wrap(err, "reading identity seed failed")
	}

	// API tokens do not expire.
	jwtAuth, err := jwt.NewAuth(*apiJWTSaltFlag, 0, jwt.NodeID(privateKey), privateKey)
	if err != nil {
		return ierrors.Wrap(err, "JWT auth initialization failed")
	}

	jwtToken, err := jwtAuth.IssueJWT()
	if err != nil {
		return ierrors.Wrap(err, "issuing JWT token failed")
	}

	if *outputJSONFlag {
		result := struct {
			JWT string `json:"jwt"`
		}{
			JWT: jwtToken,
		}

		return printJSON(result)
	}

	fmt.Println("Your API JWT token: ", jwtToken)

	return nil
}

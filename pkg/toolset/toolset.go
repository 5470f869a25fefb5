package toolset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/ierrors"
)

const (
	FlagToolIdentitySeed = "identitySeed"
	FlagToolSalt         = "salt"

	FlagToolDuration         = "duration"
	FlagToolSubmissionRate   = "submissionRate"
	FlagToolBlockInterval    = "blockInterval"
	FlagToolSenders          = "senders"
	FlagToolMaxReceived      = "maxReceived"
	FlagToolMaxReady         = "maxReady"
	FlagToolInvalidRatio     = "invalidRatio"
	FlagToolRevertRatio      = "revertRatio"
	FlagToolMultisigRatio    = "multisigRatio"
	FlagToolReportInterval   = "reportInterval"
	FlagToolProcessableLimit = "processableLimit"

	FlagToolOutputJSON            = "json"
	FlagToolDescriptionOutputJSON = "format output as JSON"
)

const (
	ToolIdentityGen = "identity-gen"
	ToolJWTApi      = "jwt-api"
	ToolSimulate    = "simulate"
)

const (
	DefaultValueAPIJWTTokenSalt = "IOTA"
)

// ShouldHandleTools checks if tools were requested.
func ShouldHandleTools() bool {
	args := os.Args[1:]

	for _, arg := range args {
		if strings.ToLower(arg) == "tool" || strings.ToLower(arg) == "tools" {
			return true
		}
	}

	return false
}

// HandleTools handles available tools.
func HandleTools() {
	args := os.Args[1:]
	if len(args) == 1 {
		listTools()
		os.Exit(1)
	}

	tools := map[string]func([]string) error{
		ToolIdentityGen: generateIdentity,
		ToolJWTApi:      generateJWTApiToken,
		ToolSimulate:    simulate,
	}

	tool, exists := tools[strings.ToLower(args[1])]
	if !exists {
		fmt.Print("tool not found.\n\n")
		listTools()
		os.Exit(1)
	}

	if err := tool(args[2:]); err != nil {
		if ierrors.Is(err, flag.ErrHelp) {
			// help text was requested
			os.Exit(0)
		}

		fmt.Printf("\nerror: %s\n", err)
		os.Exit(1)
	}

	os.Exit(0)
}

func listTools() {
	fmt.Printf("%-20s generates an identity seed for signing REST-API tokens\n", fmt.Sprintf("%s:", ToolIdentityGen))
	fmt.Printf("%-20s generates a JWT token for REST-API access\n", fmt.Sprintf("%s:", ToolJWTApi))
	fmt.Printf("%-20s drives random traffic through a transaction pool\n", fmt.Sprintf("%s:", ToolSimulate))
}

func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Check if all parameters were parsed
	if fs.NArg() != 0 {
		return ierrors.New("too much arguments")
	}

	return nil
}

func printJSON(obj interface{}) error {
	output, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(output))

	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"edd/internal/config"
	"edd/internal/dispatch"
	"edd/internal/domain"
	"edd/internal/function"
	"edd/internal/output"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const doneMessage = "\n[!] EDD is done running!"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one edd invocation and returns the process exit code. The
// closing line is printed on every path, including help and errors.
func run(argv []string, stdout, stderr io.Writer) int {
	defer fmt.Fprintln(stdout, doneMessage)

	// Cancel the running function on Ctrl+C.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := rootCmd(stdout, stderr)
	root.SetArgs(argv)
	return dispatch.Report(stdout, root.ExecuteContext(ctx))
}

// options collects every flag. Args is filled directly; the list flags are
// split after parsing.
type options struct {
	function   string
	output     string
	info       bool
	list       bool
	adRights   string
	search     string
	configPath string
	verbose    bool
	args       domain.Args
}

func rootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "edd -f <function name> [options]",
		Short: "EDD: enumerate domain data",
		Long: `Provide the function you want to run to enumerate that data from the domain.
Also provide any other extra options that you need for the specific function.
Use -l to list the available functions and -i to describe one.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &dispatch.UsageError{Err: fmt.Errorf("unexpected argument %q", args[0])}
			}
			return nil
		},
		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(cmd, &opts, stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &dispatch.UsageError{Err: err}
	})

	f := root.Flags()
	f.SortFlags = false
	f.StringVarP(&opts.function, "function", "f", "", "the function you want to use")
	f.StringVarP(&opts.output, "output", "o", "", "the path to the file to append results to")
	f.StringVarP(&opts.args.ComputerName, "computername", "c", "", "the computer you are targeting")
	f.StringVarP(&opts.args.CanonicalName, "canonicalname", "n", "", "canonical name for domain user")
	f.StringVarP(&opts.args.DomainName, "domainname", "d", "", "the domain you are targeting")
	f.StringVarP(&opts.args.GroupName, "groupname", "g", "", "the domain group you are targeting")
	f.StringVarP(&opts.args.ProcessName, "processname", "p", "", "the process you are targeting")
	f.StringVarP(&opts.args.Password, "password", "w", "", "the password to authenticate with or what you are setting it to")
	f.StringVarP(&opts.args.UserName, "username", "u", "", "the domain account you are targeting")
	f.IntVarP(&opts.args.Threads, "threads", "t", domain.DefaultThreads, "the number of threads to run")
	f.StringVarP(&opts.args.LDAPQuery, "query", "q", "", "custom LDAP filter to search")
	f.StringVarP(&opts.adRights, "adright", "a", "", "Active Directory rights to return, separated by commas")
	f.StringVarP(&opts.search, "search", "s", "", "the search term(s) for FindInterestingDomainShareFile separated by commas, accepts wildcards")
	f.StringVar(&opts.args.SharePath, "sharepath", "", "the specific share to search for interesting files")
	f.BoolVarP(&opts.info, "info", "i", false, "returns information on the specified function")
	f.BoolVarP(&opts.list, "listfunctions", "l", false, "list the EDD functions available")
	f.StringVar(&opts.configPath, "config", "", "path to config file (default: ~/.edd/config.yaml)")
	f.BoolVar(&opts.verbose, "verbose", false, "write debug logs to stderr")

	return root
}

func runDispatch(cmd *cobra.Command, opts *options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return &dispatch.UsageError{Err: err}
	}

	logger, closeLog, err := newLogger(cfg, opts.verbose, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	opts.applyConfig(cmd.Flags(), cfg)

	registry, err := function.Build(logger, cfg.Functions.Disabled, function.Builtins()...)
	if err != nil {
		return err
	}
	logger.Debug("registry built", "functions", registry.Len())

	d := dispatch.New(registry, stdout, output.NewSink(stdout, opts.output), logger)
	return d.Dispatch(cmd.Context(), dispatch.Request{
		Function: opts.function,
		Info:     opts.info,
		List:     opts.list,
		Args:     opts.args,
	})
}

// applyConfig fills values the user did not pass on the command line from
// the config defaults, then splits the list flags.
func (o *options) applyConfig(flags *pflag.FlagSet, cfg *config.Config) {
	if !flags.Changed("output") {
		o.output = cfg.General.Output
	}
	if !flags.Changed("threads") && cfg.Defaults.Threads > 0 {
		o.args.Threads = cfg.Defaults.Threads
	}
	if !flags.Changed("domainname") {
		o.args.DomainName = cfg.Defaults.DomainName
	}
	if !flags.Changed("username") {
		o.args.UserName = cfg.Defaults.UserName
	}
	o.args.ADRights = domain.SplitList(o.adRights)
	o.args.SearchTerms = domain.SplitList(o.search)
}

// loadConfig reads the --config file, or the default one when it exists.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOptional(config.DefaultConfigPath())
}

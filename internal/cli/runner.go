package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/lostfound/internal/auth"
	"github.com/idilsaglam/lostfound/internal/config"
	"github.com/idilsaglam/lostfound/internal/log"
	"github.com/idilsaglam/lostfound/internal/matcher"
	"github.com/idilsaglam/lostfound/internal/model"
	"github.com/idilsaglam/lostfound/internal/routes"
	"github.com/idilsaglam/lostfound/internal/store/jsonstore"
	"github.com/idilsaglam/lostfound/internal/tui"
	"github.com/idilsaglam/lostfound/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Group  bool // list grouped by lost/found
	Config config.Config
	Stdin  io.Reader // auth login prompts; nil means os.Stdin
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]
	log.Debug("command %s %v (data=%s)", cmd, a, opt.Config.DataFile)

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "init":
		return doInit(opt)

	case "report":
		return doReport(a, opt)

	case "ls":
		return doList(a, opt)

	case "matches":
		return doMatches(a, opt)

	case "claim", "return", "reopen":
		if len(a) != 1 {
			ui.Fail("usage: lostfound " + cmd + " <id>")
			return 2
		}
		return doSetStatus(a[0], statusFor(cmd), opt)

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: lostfound rm <id>")
			return 2
		}
		return doRemove(a[0], opt)

	case "routes":
		return doRoutes(opt)

	case "stats":
		return doStats(opt)

	case "serve":
		return doServe(a, opt)

	case "auth":
		if len(a) == 0 {
			ui.Fail("usage: lostfound auth <login|logout|status|whoami>")
			return 2
		}
		switch a[0] {
		case "login":
			return doAuthLogin(opt)
		case "logout":
			return doAuthLogout()
		case "status":
			return doAuthStatus()
		case "whoami":
			return doAuthWhoAmI()
		default:
			ui.Fail("usage: lostfound auth <login|logout|status|whoami>")
			return 2
		}
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprint(ui.Stdout, `lostfound - lost & found tracking for transit routes

Usage:
  lostfound [-data file] [-routes file] [-group] [-v] <subcommand> [args]

Subcommands:
  init                      Create the data file with sample reports
  report <lost|found> [flags] <description...>
                            Report an item (-route -location -category -date -image -by -email)
  ls [-plain] [-search q] [-kind lost|found] [-status s]
                            Browse items (interactive unless -plain)
  matches [-route id]       Show likely lost/found pairs, best first
  claim <id>                Mark an item claimed
  return <id>               Mark an item returned
  reopen <id>               Mark an item open again
  rm <id>                   Delete an item
  routes                    List routes and their stops
  stats                     Show counters
  serve [-addr :8080]       Start the HTTP API
  auth <login|logout|status|whoami>
                            Reporter session

Examples:
  lostfound init
  lostfound report lost -route 1 -location Tinkune -category Electronics "Samsung phone with red cover"
  lostfound matches
  lostfound claim 3
`)
}

func statusFor(cmd string) model.Status {
	switch cmd {
	case "claim":
		return model.StatusClaimed
	case "return":
		return model.StatusReturned
	}
	return model.StatusOpen
}

func openStore(opt Options) *jsonstore.Store {
	return jsonstore.New(opt.Config.DataFile)
}

func loadRoutes(opt Options) ([]model.Route, bool) {
	rs, err := routes.Load(opt.Config.RoutesFile)
	if err != nil {
		ui.Fail("routes: " + err.Error())
		return nil, false
	}
	return rs, true
}

// -------------- subcommand impls ----------------

func doInit(opt Options) int {
	st := openStore(opt)
	wrote, err := st.Seed()
	if err != nil {
		ui.Fail("init: " + err.Error())
		return 1
	}
	if !wrote {
		ui.OK(st.Path() + " already exists")
		return 0
	}
	ui.OK("created " + st.Path())
	return 0
}

func doReport(args []string, opt Options) int {
	if len(args) == 0 {
		ui.Fail("usage: lostfound report <lost|found> [flags] <description...>")
		return 2
	}
	kind, err := model.ParseKind(args[0])
	if err != nil {
		ui.Fail("report: " + err.Error())
		return 2
	}

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(ui.Stderr)
	route := fs.String("route", "", "route id")
	location := fs.String("location", "", "stop name")
	category := fs.String("category", "Other", "category ("+strings.Join(model.Categories, ", ")+")")
	date := fs.String("date", model.Today().String(), "date (YYYY-MM-DD)")
	image := fs.String("image", "", "image reference (required for found items)")
	by := fs.String("by", "", "reporter name (defaults to the signed-in reporter)")
	email := fs.String("email", "", "contact email (defaults to the signed-in reporter)")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	desc := strings.TrimSpace(strings.Join(fs.Args(), " "))

	if *by == "" || *email == "" {
		if s, _ := auth.Get(); s != nil {
			if *by == "" {
				*by = s.Name
			}
			if *email == "" {
				*email = s.Email
			}
		}
	}

	rs, ok := loadRoutes(opt)
	if !ok {
		return 1
	}
	it := model.Item{
		RouteID:      strings.TrimSpace(*route),
		Kind:         kind,
		Category:     strings.TrimSpace(*category),
		Description:  desc,
		Location:     strings.TrimSpace(*location),
		Date:         model.ParseDate(*date),
		Status:       model.StatusOpen,
		ReportedBy:   strings.TrimSpace(*by),
		ContactEmail: strings.TrimSpace(*email),
		ImageURL:     strings.TrimSpace(*image),
	}
	if err := it.Validate(rs); err != nil {
		ui.Fail("report: " + err.Error())
		if r, found := model.FindRoute(rs, it.RouteID); found {
			ui.Hint("Stops on " + r.Name + ": " + strings.Join(r.Stops, ", "))
		} else {
			ui.Hint("Hint: run `lostfound routes` to see route ids and stops")
		}
		return 2
	}

	saved, err := openStore(opt).Add(it)
	if err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("reported %s item %s", kind, saved.ID))
	return 0
}

func doList(args []string, opt Options) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(ui.Stderr)
	plain := fs.Bool("plain", false, "print a static listing instead of the interactive view")
	search := fs.String("search", "", "search description, location and category")
	kind := fs.String("kind", "all", "lost, found or all")
	status := fs.String("status", "all", "open, claimed, returned or all")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	f := model.Filter{Query: *search}
	if *kind != "all" {
		k, err := model.ParseKind(*kind)
		if err != nil {
			ui.Fail("ls: " + err.Error())
			return 2
		}
		f.Kind = k
	}
	if *status != "all" {
		s, err := model.ParseStatus(*status)
		if err != nil {
			ui.Fail("ls: " + err.Error())
			return 2
		}
		f.Status = s
	}

	st := openStore(opt)
	items, err := st.Load()
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	rs, ok := loadRoutes(opt)
	if !ok {
		return 1
	}

	if !*plain {
		// The interactive browser saves on quit if anything changed.
		if err := tui.Run(st, items, rs, f); err != nil {
			ui.Fail("tui: " + err.Error())
			return 1
		}
		return 0
	}

	lines := []string{statsHeader(model.CountStats(items), len(items)), ""}
	shown := f.Apply(items)
	if opt.Group {
		lines = append(lines, groupLines(shown, rs)...)
	} else {
		lines = append(lines, itemLines(shown, rs)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.Current().Muted.Render("Tip: report with `lostfound report lost -route 1 -location Tinkune \"black umbrella\"`"))
	ui.Panel(lines)
	return 0
}

func doMatches(args []string, opt Options) int {
	fs := flag.NewFlagSet("matches", flag.ContinueOnError)
	fs.SetOutput(ui.Stderr)
	route := fs.String("route", "", "only show matches on this route")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	items, err := openStore(opt).Load()
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	rs, ok := loadRoutes(opt)
	if !ok {
		return 1
	}

	matches := matcher.FindMatches(items)
	if *route != "" {
		kept := matches[:0]
		for _, m := range matches {
			if m.Lost.RouteID == *route {
				kept = append(kept, m)
			}
		}
		matches = kept
	}
	log.Debug("matcher: %d items, %d candidates", len(items), len(matches))

	t := ui.Current()
	noun := "matches"
	if len(matches) == 1 {
		noun = "match"
	}
	fmt.Fprintln(ui.Stdout, t.Title.Render("Potential Matches Found")+"  "+
		t.Muted.Render(fmt.Sprintf("%d possible %s", len(matches), noun)))
	if len(matches) == 0 {
		fmt.Fprintln(ui.Stdout, t.Muted.Render("no open lost and found reports line up yet"))
		return 0
	}
	for _, m := range matches {
		ui.Panel(matchLines(m, rs))
	}
	return 0
}

func doSetStatus(id string, st model.Status, opt Options) int {
	it, err := openStore(opt).SetStatus(id, st)
	if err != nil {
		if errors.Is(err, jsonstore.ErrNotFound) {
			ui.Fail(err.Error())
			ui.Hint("Hint: run `lostfound ls -plain` to see item ids")
			return 2
		}
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("%s is now %s", it.ID, it.Status))
	return 0
}

func doRemove(id string, opt Options) int {
	if err := openStore(opt).Remove(id); err != nil {
		if errors.Is(err, jsonstore.ErrNotFound) {
			ui.Fail(err.Error())
			ui.Hint("Hint: run `lostfound ls -plain` to see item ids")
			return 2
		}
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("removed")
	return 0
}

func doRoutes(opt Options) int {
	rs, ok := loadRoutes(opt)
	if !ok {
		return 1
	}
	lines := []string{ui.Current().Title.Render("Public Transport Routes"), ""}
	for _, r := range rs {
		lines = append(lines, fmt.Sprintf("%s  %s", ui.Current().Muted.Render(r.ID+"."), ui.RouteLabel(r, true)))
		lines = append(lines, "    "+strings.Join(r.Stops, " → "))
	}
	ui.Panel(lines)
	return 0
}

func doStats(opt Options) int {
	items, err := openStore(opt).Load()
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	s := model.CountStats(items)
	ui.Panel([]string{
		statsHeader(s, len(items)),
		ui.Current().Muted.Render(ui.ProgressBar(s.Resolved(), len(items), 28) + " resolved"),
		ui.Current().Muted.Render(fmt.Sprintf("%d potential matches", len(matcher.FindMatches(items)))),
	})
	return 0
}

// ---------------------------------------------------
// Auth subcommands
// ---------------------------------------------------

func doAuthLogin(opt Options) int {
	in := opt.Stdin
	if in == nil {
		in = os.Stdin
	}
	r := bufio.NewReader(in)
	prompt := func(label string) (string, error) {
		fmt.Fprint(ui.Stdout, label)
		line, err := r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	name, err := prompt("Your name: ")
	if err != nil {
		ui.Fail("read name: " + err.Error())
		return 1
	}
	email, err := prompt("Contact email: ")
	if err != nil {
		ui.Fail("read email: " + err.Error())
		return 1
	}
	token, err := prompt("Paste your token (empty to generate one): ")
	if err != nil && !errors.Is(err, io.EOF) {
		ui.Fail("read token: " + err.Error())
		return 1
	}
	if token == "" {
		token = uuid.NewString()
	}
	if err := auth.Set(auth.Session{Token: token, Name: name, Email: email}); err != nil {
		ui.Fail("save session: " + err.Error())
		return 1
	}
	ui.OK("logged in as " + name)
	return 0
}

func doAuthLogout() int {
	s, _ := auth.Get()
	if s != nil && s.Source == "env" {
		ui.OK("token is provided by " + config.EnvToken + " env var (nothing to delete)")
		return 0
	}
	if err := auth.Delete(); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}

func doAuthStatus() int {
	s, err := auth.Get()
	if err != nil {
		ui.Fail("session: " + err.Error())
		return 1
	}
	if s == nil {
		fmt.Fprintln(ui.Stdout, ui.Current().Muted.Render("not logged in"))
		fmt.Fprintln(ui.Stdout, "Run: lostfound auth login")
		return 0
	}
	fmt.Fprintf(ui.Stdout, "source: %s\n", s.Source)
	if s.ExpiresAt != nil {
		fmt.Fprintf(ui.Stdout, "expires: %s\n", s.ExpiresAt.UTC().Format(time.RFC3339))
		if s.Expired(time.Now()) {
			fmt.Fprintln(ui.Stdout, ui.Current().Error.Render("session expired"))
		}
	} else {
		fmt.Fprintln(ui.Stdout, "expires: (never)")
	}
	fmt.Fprintln(ui.Stdout, "env override: "+config.EnvToken)
	return 0
}

func doAuthWhoAmI() int {
	s, _ := auth.Get()
	if s == nil || s.Name == "" {
		ui.Fail("not logged in. Run: lostfound auth login")
		return 2
	}
	fmt.Fprintf(ui.Stdout, "%s <%s>\n", s.Name, s.Email)
	return 0
}

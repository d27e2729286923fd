// Command matchcheck checks a profile offline: it resolves the user's presence
// buckets, scores the selection against a readiness policy and prints the
// directory query that a search would send.
//
// Usage:
//
//	matchcheck [-policy name] [-today YYYY-MM-DD] [-strict] profile.json
//
// With -strict the exit status is 1 unless readiness passes and the query
// can run.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/facet"
	"github.com/pkordes/travel-match/backend/internal/presence"
)

// profileFile is the input document.
type profileFile struct {
	UserType         domain.UserType              `json:"userType"`
	Hometown         domain.Hometown              `json:"hometown"`
	BusinessLocation string                       `json:"businessLocation"`
	Plans            []planFile                   `json:"plans"`
	Selections       facet.Snapshot               `json:"selections"`
	Custom           map[domain.Category][]string `json:"custom"`
	Policy           string                       `json:"policy"`
	Today            *domain.Date                 `json:"today"`
	Timezone         string                       `json:"timezone"`
	DefaultCountry   string                       `json:"defaultCountry"`
}

type planFile struct {
	Destination string       `json:"destination"`
	StartDate   domain.Date  `json:"startDate"`
	EndDate     *domain.Date `json:"endDate"`
}

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
	keyColor  = color.New(color.FgCyan)
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("matchcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	policyName := fs.String("policy", "", "readiness policy (default: the user type's signup policy)")
	todayFlag := fs.String("today", "", "evaluate as of this date instead of the file's or the clock's")
	strict := fs.Bool("strict", false, "exit 1 unless readiness passes and the query is valid")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: matchcheck [-policy name] [-today YYYY-MM-DD] [-strict] profile.json")
		return 2
	}

	prof, err := readProfile(fs.Arg(0))
	if err != nil {
		errColor.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	if *policyName != "" {
		prof.Policy = *policyName
	}
	if *todayFlag != "" {
		d, err := domain.ParseDate(*todayFlag)
		if err != nil {
			errColor.Fprintf(stderr, "error: -today: %v\n", err)
			return 2
		}
		prof.Today = &d
	}

	rep, err := check(prof)
	if err != nil {
		errColor.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	rep.print(stdout)

	if *strict && (!rep.readiness.Passed || rep.invalid != nil) {
		return 1
	}
	return 0
}

func readProfile(path string) (profileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return profileFile{}, err
	}
	var prof profileFile
	if err := json.Unmarshal(data, &prof); err != nil {
		return profileFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return prof, nil
}

// report is everything matchcheck prints.
type report struct {
	today     domain.Date
	current   domain.PresenceBucket
	locals    domain.PresenceBucket
	readiness discovery.Readiness
	query     discovery.Query
	invalid   error
}

func check(prof profileFile) (report, error) {
	userType := domain.UserTypeLocal
	if prof.UserType != "" {
		t, ok := domain.ParseUserType(string(prof.UserType))
		if !ok {
			return report{}, fmt.Errorf("unknown user type %q", prof.UserType)
		}
		userType = t
	}

	policy := discovery.DefaultPolicy(userType)
	if prof.Policy != "" {
		p, ok := discovery.PolicyByName(prof.Policy)
		if !ok {
			return report{}, fmt.Errorf("unknown policy %q", prof.Policy)
		}
		policy = p
	}

	loc := time.UTC
	if prof.Timezone != "" {
		l, err := time.LoadLocation(prof.Timezone)
		if err != nil {
			return report{}, err
		}
		loc = l
	}
	country := prof.DefaultCountry
	if country == "" {
		country = "United States"
	}
	resolver := presence.NewResolver(presence.SystemClock, loc, country)
	today := resolver.Today()
	if prof.Today != nil {
		today = *prof.Today
	}

	user := domain.User{Type: userType, Hometown: prof.Hometown, BusinessLocation: prof.BusinessLocation}
	plans := make([]domain.TravelPlan, 0, len(prof.Plans))
	for _, p := range prof.Plans {
		if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
			return report{}, errors.New("plan to " + p.Destination + " ends before it starts")
		}
		plans = append(plans, domain.TravelPlan{Destination: p.Destination, StartDate: p.StartDate, EndDate: p.EndDate})
	}

	sel := facet.FromSnapshot(prof.Selections)
	for _, c := range domain.Categories {
		for _, v := range prof.Custom[c] {
			sel.AddCustom(c, v, nil)
		}
	}

	rep := report{
		today:     today,
		current:   resolver.ResolveOn(today, domain.BucketCurrent, user, plans),
		locals:    resolver.ResolveOn(today, domain.BucketLocals, user, plans),
		readiness: discovery.ValidateMinimumSelections(sel, policy),
	}
	rep.query = discovery.Build(rep.current, sel, discovery.Overrides{})
	rep.invalid = rep.query.Validate()
	return rep, nil
}

func (r report) print(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", keyColor.Sprint("today:"), r.today)
	printBucket(w, "current:", r.current)
	printBucket(w, "locals:", r.locals)

	rd := r.readiness
	state := warnColor.Sprint(rd.State)
	switch rd.State {
	case discovery.StateThresholdMet:
		state = okColor.Sprint(rd.State)
	case discovery.StateEmpty:
		if !rd.Passed {
			state = errColor.Sprint(rd.State)
		}
	}
	fmt.Fprintf(w, "%s %s %d/%d (%s)", keyColor.Sprint("readiness:"), rd.Policy, rd.Selected, rd.Required, state)
	if rd.Message != "" {
		fmt.Fprintf(w, " %s", rd.Message)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, keyColor.Sprint("query:"))
	values := r.query.Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range values[k] {
			fmt.Fprintf(w, "  %s=%s\n", k, v)
		}
	}
	if r.invalid != nil {
		errColor.Fprintf(w, "not searchable: %s\n", domain.ValidationMessage(r.invalid))
		return
	}
	okColor.Fprintf(w, "GET /search?%s\n", values.Encode())
}

func printBucket(w io.Writer, name string, b domain.PresenceBucket) {
	loc := b.Location
	if loc == "" {
		loc = warnColor.Sprint("(none)")
	}
	fmt.Fprintf(w, "%s %s [%s]\n", keyColor.Sprint(name), loc, b.Label)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"eventgallery/internal/contracts"
)

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":        {"--email E --password P", runLogin},
	"register":     {"--email E --username U --password P [--name N]", runRegister},
	"logout":       {"", runLogout},
	"whoami":       {"", runWhoami},
	"events":       {"[--page N] [--limit N] [--category C] [--search Q] [--mine]", runEvents},
	"event":        {"<event-id>", withID(func(ctx context.Context, a *app, id string) error { return emit(a, a.gateway.Event(ctx, id)) })},
	"create-event": {"--name N --date YYYY-MM-DD --location L --category C [--time HH:MM] [--description D] [--private] [--max N] [--cover FILE]", runCreateEvent},
	"join":         {"<event-id>", withID(func(ctx context.Context, a *app, id string) error { return emit(a, a.gateway.JoinEvent(ctx, id)) })},
	"join-code":    {"<invite-code>", withID(func(ctx context.Context, a *app, code string) error { return emit(a, a.gateway.JoinEventByCode(ctx, strings.ToUpper(code))) })},
	"leave":        {"<event-id>", withID(func(ctx context.Context, a *app, id string) error { return emit(a, a.gateway.LeaveEvent(ctx, id)) })},
	"images":       {"[--event ID] [--user ID] [--page N] [--limit N] [--sort F]", runImages},
	"upload":       {"--event ID --file FILE [--title T] [--description D]", runUpload},
	"like":         {"<image-id>", withID(func(ctx context.Context, a *app, id string) error { return emit(a, a.gateway.LikeImage(ctx, id)) })},
	"unlike":       {"<image-id>", withID(func(ctx context.Context, a *app, id string) error { return emit(a, a.gateway.UnlikeImage(ctx, id)) })},
	"comment":      {"--image ID --text T", runComment},
	"comments":     {"<image-id> [--page N] [--limit N]", runComments},
	"search":       {"<query> [--type all|events|images|users]", runSearch},
	"stats":        {"", func(ctx context.Context, a *app, _ []string) error { return emit(a, a.gateway.GalleryStats(ctx)) }},
}

// emit prints env and turns a failed envelope into an error for the exit
// status.
func emit[T any](a *app, env contracts.Envelope[T]) error {
	if err := a.print(env); err != nil {
		return err
	}
	return env.Err()
}

func withID(fn func(ctx context.Context, a *app, id string) error) func(context.Context, *app, []string) error {
	return func(ctx context.Context, a *app, args []string) error {
		if len(args) != 1 || args[0] == "" {
			return errUsage
		}
		return fn(ctx, a, args[0])
	}
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errUsage
	}
	return emit(a, a.auth.Login(ctx, *email, *password))
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	var req contracts.CreateUserRequest
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Username, "username", "", "public username")
	fs.StringVar(&req.Password, "password", "", "account password")
	fs.StringVar(&req.FullName, "name", "", "full name")
	if err := parse(fs, args); err != nil {
		return err
	}
	return emit(a, a.auth.Register(ctx, req))
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	a.auth.Logout(ctx)
	return a.print(contracts.MessageResponse{Message: "logged out"})
}

// runWhoami reports the state after startup revalidation.
func runWhoami(_ context.Context, a *app, _ []string) error {
	state := a.auth.State()
	return a.print(struct {
		Phase string          `json:"phase"`
		User  *contracts.User `json:"user,omitempty"`
	}{Phase: string(state.Phase), User: state.User})
}

func runEvents(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	var filters contracts.EventFilters
	fs.IntVar(&filters.Page, "page", 0, "page number")
	fs.IntVar(&filters.Limit, "limit", 0, "page size")
	category := fs.String("category", "", "event category")
	fs.StringVar(&filters.Search, "search", "", "text search")
	mine := fs.Bool("mine", false, "only events created by the current user")
	if err := parse(fs, args); err != nil {
		return err
	}
	filters.Category = contracts.EventCategory(*category)
	if *mine {
		user := a.auth.CurrentUser()
		if user == nil {
			return fmt.Errorf("--mine requires a logged in session")
		}
		filters.CreatedByID = user.ID
	}
	return emit(a, a.gateway.Events(ctx, filters))
}

func runCreateEvent(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("create-event", flag.ContinueOnError)
	var req contracts.CreateEventRequest
	fs.StringVar(&req.Name, "name", "", "event name")
	fs.StringVar(&req.Date, "date", "", "event date")
	fs.StringVar(&req.Time, "time", "", "start time")
	fs.StringVar(&req.Location, "location", "", "where it happens")
	fs.StringVar(&req.Description, "description", "", "description")
	category := fs.String("category", string(contracts.CategoryOther), "event category")
	private := fs.Bool("private", false, "invite-only event")
	maxParticipants := fs.Int("max", 0, "participant limit")
	cover := fs.String("cover", "", "cover image file")
	if err := parse(fs, args); err != nil {
		return err
	}

	req.Category = contracts.EventCategory(*category)
	if *private {
		req.IsPrivate = private
	}
	if *maxParticipants > 0 {
		req.MaxParticipants = maxParticipants
	}
	if *cover != "" {
		file, err := contracts.LoadFile(*cover)
		if err != nil {
			return err
		}
		req.CoverImage = file
	}
	return emit(a, a.gateway.CreateEvent(ctx, req))
}

func runImages(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("images", flag.ContinueOnError)
	var filters contracts.ImageFilters
	fs.StringVar(&filters.EventID, "event", "", "event id")
	fs.StringVar(&filters.UserID, "user", "", "uploader id")
	fs.IntVar(&filters.Page, "page", 0, "page number")
	fs.IntVar(&filters.Limit, "limit", 0, "page size")
	fs.StringVar(&filters.SortBy, "sort", "", "uploadedAt, likeCount, commentCount or title")
	if err := parse(fs, args); err != nil {
		return err
	}
	if filters.EventID != "" {
		eventID := filters.EventID
		filters.EventID = ""
		return emit(a, a.gateway.EventImages(ctx, eventID, filters))
	}
	return emit(a, a.gateway.Images(ctx, filters))
}

func runUpload(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	var req contracts.UploadImageRequest
	fs.StringVar(&req.EventID, "event", "", "event id")
	fs.StringVar(&req.Title, "title", "", "image title")
	fs.StringVar(&req.Description, "description", "", "image description")
	path := fs.String("file", "", "image file")
	if err := parse(fs, args); err != nil {
		return err
	}
	if req.EventID == "" || *path == "" {
		return errUsage
	}

	file, err := contracts.LoadFile(*path)
	if err != nil {
		return err
	}
	req.Image = file
	return emit(a, a.gateway.UploadImage(ctx, req))
}

func runComment(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("comment", flag.ContinueOnError)
	var req contracts.CreateCommentRequest
	fs.StringVar(&req.ImageID, "image", "", "image id")
	fs.StringVar(&req.Content, "text", "", "comment text")
	if err := parse(fs, args); err != nil {
		return err
	}
	if req.ImageID == "" {
		return errUsage
	}
	return emit(a, a.gateway.CreateComment(ctx, req))
}

func runComments(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return errUsage
	}
	fs := flag.NewFlagSet("comments", flag.ContinueOnError)
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "page size")
	if err := parse(fs, args[1:]); err != nil {
		return err
	}
	return emit(a, a.gateway.ImageComments(ctx, args[0], *page, *limit))
}

func runSearch(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return errUsage
	}
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	kind := fs.String("type", string(contracts.SearchAll), "all, events, images or users")
	if err := parse(fs, args[1:]); err != nil {
		return err
	}
	return emit(a, a.gateway.Search(ctx, args[0], contracts.SearchType(*kind)))
}

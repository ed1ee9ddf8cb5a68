package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"time"

	"eventgallery/internal/contracts"
	"eventgallery/internal/gateway"
	"eventgallery/internal/session"
	"eventgallery/internal/shared/config"

	"github.com/joho/godotenv"
)

const seedPassword = "gallery2024"

// Seeder fills a running backend through the public API, one client per
// seeded account.
type Seeder struct {
	baseURL string
	timeout time.Duration
	clients map[string]*gateway.Client
}

func main() {
	fmt.Println("🌱 Starting Event Gallery Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	seeder := &Seeder{
		baseURL: cfg.Client.BaseURL,
		timeout: 30 * time.Second,
		clients: map[string]*gateway.Client{},
	}

	ctx := context.Background()
	if env := seeder.client("probe").Health(ctx); !env.Success {
		log.Fatalf("Backend at %s is not reachable: %v", cfg.Client.BaseURL, env.Err())
	}

	fmt.Println("\n🌱 Seeding backend...")
	if err := seeder.SeedAll(ctx); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	fmt.Println("\n🎉 Seeding completed! Log in with any seeded email and password", seedPassword)
}

func (s *Seeder) client(key string) *gateway.Client {
	if c, ok := s.clients[key]; ok {
		return c
	}
	c := gateway.New(s.baseURL, session.NewStore(session.NewMemoryStorage(), nil), nil, gateway.WithTimeout(s.timeout))
	s.clients[key] = c
	return c
}

// SeedAll seeds users, events with memberships, images, likes and comments.
func (s *Seeder) SeedAll(ctx context.Context) error {
	if err := s.SeedUsers(ctx); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	seeded, err := s.SeedEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	imageIDs, err := s.SeedImages(ctx, seeded)
	if err != nil {
		return fmt.Errorf("failed to seed images: %w", err)
	}

	if err := s.SeedInteractions(ctx, imageIDs); err != nil {
		return fmt.Errorf("failed to seed likes and comments: %w", err)
	}

	stats := s.client("ana").GalleryStats(ctx)
	if stats.Success {
		fmt.Printf("  📊 Totals: %d events, %d images, %d users\n",
			stats.Data.TotalEvents, stats.Data.TotalImages, stats.Data.TotalUsers)
	}
	return nil
}

// SeedUsers registers three accounts, logging in instead when they exist.
func (s *Seeder) SeedUsers(ctx context.Context) error {
	fmt.Println("  👤 Seeding users...")

	usersData := []struct {
		key      string
		email    string
		username string
		fullName string
	}{
		{"ana", "ana@example.com", "ana", "Ana García"},
		{"luis", "luis@example.com", "luis", "Luis Pérez"},
		{"marta", "marta@example.com", "marta", "Marta López"},
	}

	for _, u := range usersData {
		c := s.client(u.key)
		env := c.Register(ctx, contracts.CreateUserRequest{
			Email:    u.email,
			Username: u.username,
			Password: seedPassword,
			FullName: u.fullName,
		})
		if !env.Success && env.StatusCode() == 409 {
			env = c.Login(ctx, contracts.LoginRequest{Email: u.email, Password: seedPassword})
		}
		if !env.Success {
			return fmt.Errorf("user %s: %w", u.email, env.Err())
		}
		fmt.Printf("    ✅ Ready user: %s (%s)\n", env.Data.User.Username, env.Data.User.Email)
	}
	return nil
}

type seededEvent struct {
	id      string
	members []string
}

// SeedEvents creates one public and one private event; the private one is
// joined through its invite code.
func (s *Seeder) SeedEvents(ctx context.Context) ([]seededEvent, error) {
	fmt.Println("  🎉 Seeding events...")

	private := true
	capacity := 50
	eventsData := []struct {
		owner   string
		joiners []string
		req     contracts.CreateEventRequest
	}{
		{
			owner:   "ana",
			joiners: []string{"luis", "marta"},
			req: contracts.CreateEventRequest{
				Name:        "Boda de Ana y Carlos",
				Description: "Comparte tus fotos de la ceremonia y la fiesta",
				Date:        time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
				Time:        "18:30",
				Location:    "Finca El Olivar, Sevilla",
				Category:    contracts.CategoryWedding,
				CoverImage:  solidPNG("cover.png", color.RGBA{R: 240, G: 200, B: 210, A: 255}),
			},
		},
		{
			owner:   "luis",
			joiners: []string{"marta"},
			req: contracts.CreateEventRequest{
				Name:            "Concierto privado",
				Date:            time.Now().AddDate(0, 0, 14).Format("2006-01-02"),
				Location:        "Sala Apolo, Barcelona",
				Category:        contracts.CategoryMusic,
				IsPrivate:       &private,
				MaxParticipants: &capacity,
			},
		},
	}

	var seeded []seededEvent
	for _, e := range eventsData {
		created := s.client(e.owner).CreateEvent(ctx, e.req)
		if !created.Success {
			return nil, fmt.Errorf("event %q: %w", e.req.Name, created.Err())
		}
		event := created.Data
		fmt.Printf("    ✅ Created event: %s (code %s)\n", event.Name, event.InviteCode)

		members := []string{e.owner}
		for _, joiner := range e.joiners {
			var joined contracts.Envelope[contracts.JoinEventResponse]
			if event.IsPrivate {
				joined = s.client(joiner).JoinEventByCode(ctx, event.InviteCode)
			} else {
				joined = s.client(joiner).JoinEvent(ctx, event.ID)
			}
			if !joined.Success {
				return nil, fmt.Errorf("%s joining %q: %w", joiner, event.Name, joined.Err())
			}
			members = append(members, joiner)
		}
		seeded = append(seeded, seededEvent{id: event.ID, members: members})
	}
	return seeded, nil
}

// SeedImages uploads one generated picture per member and event.
func (s *Seeder) SeedImages(ctx context.Context, seeded []seededEvent) ([]string, error) {
	fmt.Println("  🖼️ Seeding images...")

	palette := []color.RGBA{
		{R: 66, G: 133, B: 244, A: 255},
		{R: 219, G: 68, B: 55, A: 255},
		{R: 15, G: 157, B: 88, A: 255},
	}

	var imageIDs []string
	for _, event := range seeded {
		for i, member := range event.members {
			uploaded := s.client(member).UploadImage(ctx, contracts.UploadImageRequest{
				EventID: event.id,
				Title:   fmt.Sprintf("Foto de %s", member),
				Image:   solidPNG(fmt.Sprintf("%s.png", member), palette[i%len(palette)]),
			})
			if !uploaded.Success {
				return nil, fmt.Errorf("upload by %s: %w", member, uploaded.Err())
			}
			imageIDs = append(imageIDs, uploaded.Data.Image.ID)
		}
	}
	fmt.Printf("    ✅ Uploaded %d images\n", len(imageIDs))
	return imageIDs, nil
}

// SeedInteractions has every account like and comment on each image it can
// see.
func (s *Seeder) SeedInteractions(ctx context.Context, imageIDs []string) error {
	fmt.Println("  💬 Seeding likes and comments...")

	for _, key := range []string{"ana", "luis", "marta"} {
		c := s.client(key)
		for _, id := range imageIDs {
			if liked := c.LikeImage(ctx, id); !liked.Success {
				// Private images of events the account never joined.
				if liked.StatusCode() == 404 {
					continue
				}
				return fmt.Errorf("like by %s: %w", key, liked.Err())
			}
			comment := c.CreateComment(ctx, contracts.CreateCommentRequest{
				ImageID: id,
				Content: fmt.Sprintf("¡Qué buena foto! (%s)", key),
			})
			if !comment.Success {
				return fmt.Errorf("comment by %s: %w", key, comment.Err())
			}
		}
	}
	fmt.Println("    ✅ Likes and comments added")
	return nil
}

// solidPNG renders a small single-colour PNG attachment.
func solidPNG(name string, fill color.RGBA) *contracts.File {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return &contracts.File{Name: name, ContentType: "image/png", Data: buf.Bytes()}
}

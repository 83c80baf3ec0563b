package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/PocketCal/PC-Backend/internal/client"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "calcli",
		Usage: "View and edit a shared hourly calendar from the terminal.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server", Value: serverDefault(), Usage: "Calendar API base URL."},
			&cli.StringFlag{Name: "cache-dir", Value: cacheDirDefault(), Usage: "Directory for the offline mirror."},
		},
		Commands: []*cli.Command{
			registerCommand(),
			loginCommand(),
			dayCommand(),
			editCommand(),
			remarksCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func serverDefault() string {
	if s := os.Getenv("CAL_SERVER"); s != "" {
		return s
	}
	return "http://localhost:5000"
}

func cacheDirDefault() string {
	if d := os.Getenv("CAL_CACHE_DIR"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pocketcal"
	}
	return filepath.Join(home, ".pocketcal")
}

// newMirror builds the API client and offline cache, restoring a saved
// login when one exists.
func newMirror(c *cli.Context) (*client.Mirror, *client.Client, *client.Cache, error) {
	api := client.New(c.String("server"))
	cache := client.NewCache(c.String("cache-dir"))

	sess, found, err := cache.LoadSession()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading saved session: %w", err)
	}
	if found {
		api.Token = sess.Token
	}
	return client.NewMirror(api, cache), api, cache, nil
}

func currentUser(cache *client.Cache) string {
	sess, found, err := cache.LoadSession()
	if err != nil || !found {
		return ""
	}
	return sess.Email
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account on the calendar server.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "role", Usage: "boss, secretary or viewer (default viewer)."},
		},
		Action: func(c *cli.Context) error {
			api := client.New(c.String("server"))
			if err := api.Register(c.Context, c.String("email"), c.String("password"), c.String("role")); err != nil {
				return err
			}
			fmt.Println("Registered.")
			return nil
		},
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and save the session token locally.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			api := client.New(c.String("server"))
			cache := client.NewCache(c.String("cache-dir"))

			sess, err := api.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			if err := cache.SaveSession(sess); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s).\n", sess.Email, sess.Role)
			return nil
		},
	}
}

func dayCommand() *cli.Command {
	return &cli.Command{
		Name:  "day",
		Usage: "Show the hourly grid and remarks for one day.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Usage: "Calendar owner email (defaults to the logged-in user)."},
			&cli.StringFlag{Name: "date", Value: time.Now().Format("2006-01-02"), Usage: "Day to show, yyyy-mm-dd."},
		},
		Action: func(c *cli.Context) error {
			mirror, _, cache, err := newMirror(c)
			if err != nil {
				return err
			}

			owner := c.String("owner")
			if owner == "" {
				owner = currentUser(cache)
			}
			if owner == "" {
				return fmt.Errorf("no owner given and no saved login; run calcli login first")
			}
			date := c.String("date")

			view, stale, err := mirror.OpenDay(c.Context, owner, date)
			if err != nil {
				return err
			}
			if stale {
				fmt.Println("(offline: showing cached copy)")
			}

			past := client.IsPastDay(date, time.Now())
			fmt.Printf("%s - %s", owner, date)
			if past {
				fmt.Print(" (read-only, past day)")
			}
			fmt.Println()
			for _, hour := range client.Hours() {
				fmt.Printf("%5s  %s\n", client.SlotStart(hour), view.SlotText(hour))
			}

			remark, _, err := mirror.Remark(c.Context, owner)
			if err != nil {
				return err
			}
			fmt.Printf("\nRemarks: %s\n", remark.Remarks)
			return nil
		},
	}
}

func editCommand() *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Set the text of one hour slot.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Usage: "Calendar owner email (defaults to the logged-in user)."},
			&cli.StringFlag{Name: "date", Required: true, Usage: "Day to edit, yyyy-mm-dd."},
			&cli.IntFlag{Name: "hour", Required: true, Usage: "Slot hour, 7-22."},
			&cli.StringFlag{Name: "text", Required: true, Usage: "New slot text (empty leaves an empty slot untouched)."},
		},
		Action: func(c *cli.Context) error {
			mirror, _, cache, err := newMirror(c)
			if err != nil {
				return err
			}

			owner := c.String("owner")
			if owner == "" {
				owner = currentUser(cache)
			}
			if owner == "" {
				return fmt.Errorf("no owner given and no saved login; run calcli login first")
			}

			hour := c.Int("hour")
			if hour < client.DayStartHour || hour > client.DayEndHour {
				return fmt.Errorf("hour must be between %d and %d", client.DayStartHour, client.DayEndHour)
			}

			view, stale, err := mirror.OpenDay(c.Context, owner, c.String("date"))
			if err != nil {
				return err
			}
			if stale {
				return fmt.Errorf("server unreachable; edits need a live connection")
			}

			if err := mirror.EditSlot(c.Context, view, hour, c.String("text")); err != nil {
				return err
			}
			fmt.Println("Saved.")
			return nil
		},
	}
}

func remarksCommand() *cli.Command {
	return &cli.Command{
		Name:  "remarks",
		Usage: "Show or set an owner's remarks.",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the owner's remarks.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "owner", Required: true},
				},
				Action: func(c *cli.Context) error {
					mirror, _, _, err := newMirror(c)
					if err != nil {
						return err
					}
					remark, stale, err := mirror.Remark(c.Context, c.String("owner"))
					if err != nil {
						return err
					}
					if stale {
						fmt.Println("(offline: showing cached copy)")
					}
					fmt.Println(remark.Remarks)
					return nil
				},
			},
			{
				Name:  "set",
				Usage: "Replace your remarks (owner only, not on past days).",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "owner", Required: true},
					&cli.StringFlag{Name: "date", Value: time.Now().Format("2006-01-02"), Usage: "Day being viewed, yyyy-mm-dd."},
					&cli.StringFlag{Name: "text", Required: true},
				},
				Action: func(c *cli.Context) error {
					mirror, _, cache, err := newMirror(c)
					if err != nil {
						return err
					}
					user := currentUser(cache)
					return mirror.SaveRemark(c.Context, user, c.String("owner"), c.String("date"), c.String("text"))
				},
			},
		},
	}
}

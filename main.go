package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"smartsimon/client/api"
	"smartsimon/client/composer"
	"smartsimon/client/inbox"
	"smartsimon/client/loader"
	"smartsimon/client/media"
	"smartsimon/client/relation"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8000"
	}
	mediaURL := os.Getenv("MEDIA_BASE_URL")
	if mediaURL == "" {
		mediaURL = apiURL
	}

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	client := api.New(apiURL, nil)
	pictures := media.Resolver{BaseURL: mediaURL}

	sess := login(ctx, client, scanner)
	fmt.Printf("Logged in as %s (ID: %d)\n", sess.username, sess.userID)

	store := inbox.NewStore(client)
	unsubscribe := store.Subscribe(func(count int) {
		if count > 0 {
			fmt.Printf("[bell] %d pending friend request(s)\n", count)
		}
	})
	defer unsubscribe()

	// Size the badge once at login, without blocking the menu
	initial := loader.Start(ctx, func(ctx context.Context) (int, error) {
		if err := store.Refresh(ctx); err != nil {
			return 0, err
		}
		return store.Count(), nil
	})
	if _, err := initial.Wait(ctx); err != nil {
		log.Printf("Initial inbox fetch failed: %v", err)
	}

	send := composer.New(client)

	for {
		fmt.Println("\n1) Notifications  2) My friends  3) Add friend  4) View profile  5) Leaderboard  6) Quit")
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			showNotifications(ctx, store, pictures, scanner)
		case "2":
			showFriends(ctx, client, pictures)
		case "3":
			fmt.Print("Friend's username: ")
			scanner.Scan()
			fmt.Println(send.SendByUsername(ctx, strings.TrimSpace(scanner.Text())))
		case "4":
			showProfile(ctx, client, sess.userID, pictures, scanner)
		case "5":
			showLeaderboard(ctx, client)
		case "6":
			client.Logout()
			fmt.Println("Logged out.")
			return
		default:
			fmt.Println("Unknown choice")
		}
	}
}

type identity struct {
	userID   int
	username string
}

func login(ctx context.Context, client *api.Client, scanner *bufio.Scanner) identity {
	for {
		fmt.Print("Email: ")
		scanner.Scan()
		email := strings.TrimSpace(scanner.Text())

		fmt.Print("Password: ")
		scanner.Scan()
		password := strings.TrimSpace(scanner.Text())

		sess, err := client.Login(ctx, email, password)
		if err != nil {
			var apiErr *api.APIError
			if errors.As(err, &apiErr) {
				fmt.Println(apiErr.Detail)
			} else {
				log.Printf("Login failed: %v", err)
			}
			continue
		}
		return identity{userID: sess.UserID, username: sess.Username}
	}
}

func showNotifications(ctx context.Context, store *inbox.Store, pictures media.Resolver, scanner *bufio.Scanner) {
	if err := store.Refresh(ctx); err != nil {
		log.Printf("Error fetching friend requests: %v", err)
		return
	}

	pending := store.Pending()
	if len(pending) == 0 {
		fmt.Println("No friend requests at the moment.")
		return
	}

	fmt.Println("Friend requests:")
	for _, req := range pending {
		fmt.Printf("  #%d  %s  %s  %s\n",
			req.ID, req.RequesterUsername,
			req.Timestamp.Format("2006-01-02 15:04"),
			pictures.ProfilePictureURL(req.RequesterProfilePicture))
	}

	fmt.Print("accept <id> / delete <id> / back: ")
	if !scanner.Scan() {
		return
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) != 2 {
		return
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		fmt.Println("Invalid request ID")
		return
	}

	switch fields[0] {
	case "accept":
		// Failures are logged by the store; the list simply stays put
		store.Accept(ctx, id)
	case "delete":
		store.Delete(ctx, id)
	}
}

func showFriends(ctx context.Context, client *api.Client, pictures media.Resolver) {
	me, err := client.GetMe(ctx)
	if err != nil {
		log.Printf("Failed to fetch user data: %v", err)
		return
	}

	if len(me.Friends) == 0 {
		fmt.Println("You have no friends yet.")
		return
	}
	for _, friend := range me.Friends {
		best := "-"
		if friend.BestScore != nil {
			best = strconv.Itoa(*friend.BestScore)
		}
		fmt.Printf("  %s  best score: %s  %s\n", friend.Username, best, pictures.ProfilePictureURL(friend.ProfilePicture))
	}
}

func showProfile(ctx context.Context, client *api.Client, viewerID int, pictures media.Resolver, scanner *bufio.Scanner) {
	fmt.Print("User ID: ")
	scanner.Scan()
	subjectID, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		fmt.Println("Invalid user ID")
		return
	}

	resolver := relation.NewResolver(client, viewerID, subjectID)
	state, err := resolver.Resolve(ctx)
	if err != nil {
		log.Printf("Error fetching user data: %v", err)
		return
	}

	profile := resolver.Profile()
	best := "-"
	if profile.BestScore != nil {
		best = strconv.Itoa(*profile.BestScore)
	}
	fmt.Printf("%s <%s>  best score: %s\n", profile.Username, profile.Email, best)
	fmt.Printf("  picture: %s\n", pictures.ProfilePictureURL(profile.ProfilePicture))
	fmt.Printf("  friends: %d, relation: %s\n", len(profile.Friends), state)

	switch state {
	case relation.Friend:
		fmt.Print("unfriend? (y/n): ")
		scanner.Scan()
		if strings.TrimSpace(scanner.Text()) == "y" {
			if err := resolver.Unfriend(ctx); err == nil {
				fmt.Println("Unfriended.")
			}
		}
	case relation.Stranger:
		fmt.Print("send friend request? (y/n): ")
		scanner.Scan()
		if strings.TrimSpace(scanner.Text()) == "y" {
			if _, err := resolver.SendRequest(ctx); err == nil {
				fmt.Println("Friend request sent!")
			}
		}
	}
}

func showLeaderboard(ctx context.Context, client *api.Client) {
	top, err := client.GetTopScores(ctx)
	if err != nil {
		log.Printf("Error fetching leaderboard: %v", err)
		return
	}
	for i, entry := range top {
		best := "-"
		if entry.BestScore != nil {
			best = strconv.Itoa(*entry.BestScore)
		}
		fmt.Printf("  %2d. %-20s %s\n", i+1, entry.Username, best)
	}
}

package service

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"blog/app/config"
	"blog/app/mail"
	"blog/app/models"
	"blog/app/services"

	"go.uber.org/zap"
)

// importPosts loads a JSON array of posts from path. Posts without a slug
// get one derived from their title.
func importPosts(cfg config.Config, path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read posts file: %v\n", err)
		return 1
	}

	var posts []*models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		fmt.Printf("Failed to parse posts file: %v\n", err)
		return 1
	}

	store, err := openStore(cfg, nil)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	svc := services.NewPostService(store.Posts, store.Comments, &mail.Outbox{}, services.Settings{
		PageSize: cfg.App.PageSize,
		MailFrom: cfg.Mail.From,
	}, zap.NewNop())

	failed := 0
	for i, p := range posts {
		p.ID = 0
		if err := svc.CreatePost(p); err != nil {
			fmt.Printf("Skipping post %d (%q): %v\n", i+1, p.Title, err)
			failed++
			continue
		}
		fmt.Printf("Imported post %d: %s\n", p.ID, p.AbsoluteURL())
	}

	fmt.Printf("Imported %d of %d posts\n", len(posts)-failed, len(posts))
	if failed > 0 {
		return 1
	}
	return 0
}

// commentActive shows or hides a single comment.
func commentActive(cfg config.Config, idArg, activeArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Printf("Invalid comment id: %s\n", idArg)
		return 1
	}
	active, err := strconv.ParseBool(activeArg)
	if err != nil {
		fmt.Printf("Invalid active value: %s\n", activeArg)
		return 1
	}

	store, err := openStore(cfg, nil)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	comment, err := services.NewCommentService(store.Comments, nil).SetActive(id, active)
	if err != nil {
		fmt.Printf("Failed to update comment %d: %v\n", id, err)
		return 1
	}
	fmt.Printf("Comment %d active=%t\n", comment.ID, comment.Active)
	return 0
}

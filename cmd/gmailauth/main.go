// Command gmailauth runs the one-time OAuth consent flow that lets the API
// send mail through the Gmail account in MAIL_USER.
package main

import (
	"context"
	"log"
	"os"

	"github.com/justsurfingit/HireNest/internal/auth"
	"github.com/justsurfingit/HireNest/internal/config"
)

func main() {
	credentialsFile, tokenFile := config.LoadGmailFiles()
	if err := auth.AuthorizeGmail(context.Background(), credentialsFile, tokenFile, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("gmail authorization failed: %v", err)
	}
	log.Println("Gmail token saved; the API can now send email.")
}

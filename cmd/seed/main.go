// Command seed fills a development database with a small sample catalog and
// membership so the frontend has something to show.
// Usage: go run cmd/seed/main.go [-db path/to/circulation.db]
package main

import (
	"flag"
	"log"

	"github.com/openshelf/circulation/internal/config"
	"github.com/openshelf/circulation/internal/database"
	"github.com/openshelf/circulation/internal/database/books"
	"github.com/openshelf/circulation/internal/database/members"
)

type sampleBook struct {
	title    string
	author   string
	category string
	stock    int
}

var sampleBooks = []sampleBook{
	{"Pride and Prejudice", "Jane Austen", "Fiction", 4},
	{"Moby-Dick", "Herman Melville", "Fiction", 2},
	{"A Brief History of Time", "Stephen Hawking", "Science", 3},
	{"The Art of Computer Programming", "Donald Knuth", "Computing", 1},
	{"The Elements of Style", "Strunk and White", "Reference", 5},
}

type sampleMember struct {
	name  string
	email string
	phone string
}

var sampleMembers = []sampleMember{
	{"Jane Doe", "jane.doe@example.com", "555-0101"},
	{"John Smith", "john.smith@example.com", "555-0102"},
	{"Ada Wong", "ada.wong@example.com", "555-0103"},
}

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the database file")
	flag.Parse()

	log.Printf("Seeding database at %s...", *dbPath)

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	booksRepo := books.NewRepository(db.DB)
	for _, b := range sampleBooks {
		book, err := booksRepo.AddBook(b.title, b.author, b.category, b.stock)
		if err != nil {
			log.Printf("Failed to add book %q: %v", b.title, err)
			continue
		}
		log.Printf("Added: %s by %s (%d copies)", book.Title, book.Author, book.TotalStock)
	}

	membersRepo := members.NewRepository(db.DB)
	for _, m := range sampleMembers {
		member, err := membersRepo.AddMember(m.name, m.email, m.phone)
		if err != nil {
			log.Printf("Failed to add member %q: %v", m.name, err)
			continue
		}
		log.Printf("Registered: %s <%s>", member.Name, member.Email)
	}

	log.Printf("Done")
}

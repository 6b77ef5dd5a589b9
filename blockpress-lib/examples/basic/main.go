// ABOUTME: Basic example of using the Blockpress library
// ABOUTME: Prints the flattened blocks of one document

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	blockpress "blockpress-api/blockpress-lib"
	"blockpress-api/core/domain"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: basic <document id or URL>")
	}

	client, err := blockpress.NewClient(
		blockpress.WithToken(os.Getenv("SOURCE_TOKEN")),
		blockpress.WithQuietMode(),
	)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	doc, err := client.GetDocument(ctx, os.Args[1])
	if err != nil {
		log.Fatalf("Failed to get document: %v", err)
	}

	if doc.Title != nil {
		fmt.Printf("# %s\n\n", *doc.Title)
	}
	for _, b := range doc.Blocks {
		printBlock(b, 0)
	}
}

func printBlock(b domain.NormalizedBlock, indent int) {
	text := ""
	for _, n := range b.Inline {
		text += n.Text
	}
	fmt.Printf("%*s[%s] %s\n", indent*2, "", b.Type, text)
	if b.Panel != nil {
		fmt.Printf("%*s  panel: %s\n", indent*2, "", b.Panel.Kind)
	}
	for _, child := range b.Children {
		printBlock(child, indent+1)
	}
}

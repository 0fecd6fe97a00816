package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"
)

// User represents the structure of a user document to insert
type User struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
	City  string `json:"city"`
}

var cities = []string{"Boston", "Chicago", "Denver", "Austin", "Seattle"}

// generateRandomName generates a random 6-letter name
func generateRandomName(rng *rand.Rand) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	name := make([]byte, 6)
	for i := range name {
		name[i] = letters[rng.Intn(len(letters))]
	}
	name[0] = name[0] - 32
	return string(name)
}

func randomUser(rng *rand.Rand) User {
	name := generateRandomName(rng)
	return User{
		Name:  name,
		Age:   rng.Intn(82) + 18,
		Email: fmt.Sprintf("%s@example.com", strings.ToLower(name)),
		City:  cities[rng.Intn(len(cities))],
	}
}

func post(url string, body interface{}, expected int) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != expected {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

// createCollection creates the target collection; an existing one is reused
func createCollection(collURL string) error {
	req, err := http.NewRequest(http.MethodPut, collURL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

// lookupCount asks the index endpoint how many users live in city
func lookupCount(baseURL, collection, city string) (int64, error) {
	resp, err := http.Get(fmt.Sprintf("%s/collections/%s/indexes/city/%s?limit=1", baseURL, collection, city))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	var page struct {
		Total int64 `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return 0, err
	}
	return page.Total, nil
}

func main() {
	var (
		numUsers   = flag.Int("users", 1000, "Number of users to insert")
		batchSize  = flag.Int("batch", 100, "Users per batch request (1 inserts one at a time)")
		serverURL  = flag.String("url", "http://localhost:8080", "hashsync server URL")
		collection = flag.String("collection", "users", "Target collection")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	if *numUsers <= 0 || *batchSize <= 0 || *batchSize > 1000 {
		fmt.Println("Error: -users must be positive and -batch must be between 1 and 1000")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	collURL := *serverURL + "/collections/" + *collection

	if err := createCollection(collURL); err != nil {
		fmt.Printf("Error creating collection: %v\n", err)
		os.Exit(1)
	}
	// The index must exist before the load so every insert exercises propagation
	if err := post(collURL+"/indexes/city", nil, http.StatusCreated); err != nil {
		fmt.Printf("Note: creating city index: %v (continuing)\n", err)
	}

	fmt.Printf("Starting load test: inserting %d users to %s in batches of %d\n", *numUsers, collURL, *batchSize)

	startTime := time.Now()
	expected := make(map[string]int64)
	successCount := 0
	errorCount := 0

	for sent := 0; sent < *numUsers; {
		n := min(*batchSize, *numUsers-sent)
		users := make([]User, n)
		for i := range users {
			users[i] = randomUser(rng)
		}

		var err error
		if n == 1 {
			err = post(collURL, users[0], http.StatusCreated)
		} else {
			err = post(collURL+"/batch", map[string]interface{}{"documents": users}, http.StatusCreated)
		}
		if err != nil {
			errorCount += n
			fmt.Printf("Error inserting users %d-%d: %v\n", sent+1, sent+n, err)
		} else {
			successCount += n
			for _, u := range users {
				expected[u.City]++
			}
		}
		sent += n
	}

	totalTime := time.Since(startTime)

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("LOAD TEST COMPLETE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Successful inserts:    %d\n", successCount)
	fmt.Printf("Failed inserts:        %d\n", errorCount)
	fmt.Printf("Total time:            %v\n", totalTime)
	fmt.Printf("Average rate:          %.2f users/sec\n", float64(successCount)/totalTime.Seconds())

	// Index totals can exceed what we sent if the collection was not empty
	mismatches := 0
	for _, city := range cities {
		got, err := lookupCount(*serverURL, *collection, city)
		if err != nil {
			fmt.Printf("Lookup %s failed: %v\n", city, err)
			mismatches++
			continue
		}
		fmt.Printf("city=%-8s sent=%-6d indexed=%d\n", city, expected[city], got)
		if got < expected[city] {
			mismatches++
		}
	}

	if errorCount > 0 || mismatches > 0 {
		fmt.Printf("\nWarning: %d insert errors, %d index mismatches\n", errorCount, mismatches)
		os.Exit(1)
	}
	fmt.Println("\nLoad test completed successfully!")
}

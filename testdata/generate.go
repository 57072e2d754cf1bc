// Generates the fixture files used for manual testing:
//
//	go run generate.go
package main

import (
	"log"
	"os"

	"github.com/parquet-go/parquet-go"
)

type User struct {
	ID     int64   `parquet:"id"`
	Name   string  `parquet:"name"`
	Age    int32   `parquet:"age"`
	Active bool    `parquet:"active"`
	Score  float64 `parquet:"score"`
}

type Address struct {
	City string `parquet:"city"`
	Zip  string `parquet:"zip"`
}

type Customer struct {
	ID      int64             `parquet:"id"`
	Name    string            `parquet:"name"`
	Email   *string           `parquet:"email,optional"`
	Tags    []string          `parquet:"tags,list"`
	Address Address           `parquet:"address"`
	Labels  map[string]string `parquet:"labels"`
}

type Event struct {
	Seq  int64  `parquet:"seq"`
	Kind string `parquet:"kind,dict"`
}

// write creates path and writes each chunk as its own row group.
func write[T any](path string, chunks ...[]T) {
	file, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[T](file)
	for _, rows := range chunks {
		if _, err := writer.Write(rows); err != nil {
			log.Fatal(err)
		}
		if err := writer.Flush(); err != nil {
			log.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}
}

func events(start, n int) []Event {
	kinds := []string{"click", "view", "purchase"}
	rows := make([]Event, n)
	for i := range rows {
		rows[i] = Event{Seq: int64(start + i), Kind: kinds[(start+i)%len(kinds)]}
	}
	return rows
}

func main() {
	write("simple.parquet", []User{
		{ID: 1, Name: "alice", Age: 30, Active: true, Score: 95.5},
		{ID: 2, Name: "bob", Age: 25, Active: false, Score: 82.3},
		{ID: 3, Name: "charlie", Age: 35, Active: true, Score: 88.7},
		{ID: 4, Name: "diana", Age: 28, Active: true, Score: 91.2},
		{ID: 5, Name: "eve", Age: 42, Active: false, Score: 76.8},
	})
	log.Println("Generated simple.parquet with 5 users")

	email := "alice@example.com"
	write("nested.parquet", []Customer{
		{ID: 1, Name: "alice", Email: &email, Tags: []string{"vip", "beta"},
			Address: Address{City: "Berlin", Zip: "10115"}, Labels: map[string]string{"tier": "gold"}},
		{ID: 2, Name: "bob", Tags: []string{},
			Address: Address{City: "Lisbon", Zip: "1100"}},
		{ID: 3, Name: "carol", Tags: []string{"new"},
			Address: Address{City: "Oslo", Zip: "0150"}, Labels: map[string]string{"tier": "silver", "region": "eu"}},
	})
	log.Println("Generated nested.parquet with 3 customers")

	write("groups.parquet", events(0, 100), events(100, 50), events(150, 75))
	log.Println("Generated groups.parquet with row groups of 100, 50 and 75 events")
}

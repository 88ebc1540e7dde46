package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Notes API Smoke Test\n")

	// 1. Register (ignore conflict when the user already exists)
	color.Yellow("\n1. Register")
	resp, body, err := sendRequest("POST", "/auth/register", "", map[string]interface{}{
		"name":     "Smoke Tester",
		"email":    "smoke@example.com",
		"password": "smoke1234",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	// 2. Login
	color.Yellow("\n2. Login")
	resp, body, err = sendRequest("POST", "/auth/login", "", map[string]interface{}{
		"email":    "smoke@example.com",
		"password": "smoke1234",
	})
	if err != nil || resp.StatusCode != http.StatusOK {
		color.Red("Login failed (status %v): %v", resp.Status, err)
		os.Exit(1)
	}
	var loginEnvelope struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &loginEnvelope); err != nil {
		color.Red("Failed to parse login response: %v", err)
		os.Exit(1)
	}
	token := loginEnvelope.Data.AccessToken
	color.Green("Status: %s", resp.Status)

	// 3. Create a note
	color.Yellow("\n3. Create Note")
	resp, body, err = sendRequest("POST", "/notes", token, map[string]interface{}{
		"title":   "Smoke test note",
		"content": "This note was created by the API smoke test and can be deleted.",
		"tags":    []string{"Smoke", "smoke", " test "},
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	var noteEnvelope struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	_ = json.Unmarshal(body, &noteEnvelope)
	noteId := noteEnvelope.Data.Id

	// 4. List notes
	color.Yellow("\n4. List Notes")
	resp, body, err = sendRequest("GET", "/notes?page=1&limit=5", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 5. Toggle pin
	color.Yellow("\n5. Toggle Pin")
	resp, body, err = sendRequest("PATCH", "/notes/"+noteId+"/pin", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	// 6. Stats
	color.Yellow("\n6. Stats")
	resp, body, err = sendRequest("GET", "/notes/stats", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 7. AI summarize (needs a configured provider; failure is reported, not fatal)
	color.Yellow("\n7. AI Summarize")
	resp, body, err = sendRequest("POST", "/ai/summarize", token, map[string]interface{}{
		"content": "The quarterly review covered revenue growth, hiring plans and the roadmap for the next two releases.",
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		prettyPrint(body)
	}

	// 8. Delete the note
	color.Yellow("\n8. Delete Note")
	resp, _, err = sendRequest("DELETE", "/notes/"+noteId, token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	color.Cyan("\n✅ Smoke test finished")
}

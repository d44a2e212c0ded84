package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"sealed_rps/internal/seal"
)

// Drives one full two-player game against a running dev server: auth, create,
// join, start, sealed move submission, then waits for the revealed event on
// the websocket feed.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := fmt.Sprintf("http://127.0.0.1:%s/api/v1", port)

	tokenA := auth(base, "smoke-alice")
	tokenB := auth(base, "smoke-bob")

	var created struct {
		GameID uint64 `json:"game_id"`
	}
	post(base+"/games", tokenA, map[string]any{"max_players": 2}, &created)
	log.Printf("created game %d", created.GameID)

	post(fmt.Sprintf("%s/games/%d/join", base, created.GameID), tokenB, map[string]any{}, nil)

	// subscribe to the event feed before starting
	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s&game=%d", port, tokenA, created.GameID)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial ws: %v", err)
	}
	defer conn.Close()

	post(fmt.Sprintf("%s/games/%d/start", base, created.GameID), tokenA, map[string]any{}, nil)

	submit := func(token string, move byte) {
		ciphertext := []byte{move}
		post(fmt.Sprintf("%s/games/%d/move", base, created.GameID), token, map[string]any{
			"ciphertext": base64.StdEncoding.EncodeToString(ciphertext),
			"proof":      base64.StdEncoding.EncodeToString(seal.Proof(ciphertext)),
		}, nil)
	}
	submit(tokenA, 1) // rock
	submit(tokenB, 2) // paper

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			continue
		}
		var obj map[string]any
		_ = json.Unmarshal(msg, &obj)
		log.Printf("event: %s", string(msg))
		if t, ok := obj["type"].(string); ok && t == "game_revealed" {
			log.Println("smoke test passed")
			return
		}
	}

	log.Fatal("timed out waiting for game_revealed")
}

func auth(base, player string) string {
	var res struct {
		Token string `json:"token"`
	}
	post(base+"/auth", "", map[string]any{"player_id": player}, &res)
	return res.Token
}

func post(url, token string, body any, out any) {
	b, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		log.Fatalf("build request %s: %v", url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("post %s: %v", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		log.Fatalf("post %s: status %d", url, res.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("decode %s: %v", url, err)
		}
	}
}

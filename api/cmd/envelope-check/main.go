// envelope-check exercises the outbound envelope format in isolation: it
// encrypts a sample payload (or one passed with -params), self-decodes it,
// and verifies the round trip. Useful when validating wire compatibility
// without touching the live backend.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"ecourts/api/internal/infrastructure/envelope"
)

func main() {
	paramsJSON := flag.String("params", `{"version":"3.0","uid":"ABC:pkg"}`, "JSON object to wrap")
	decode := flag.String("decode", "", "decode a client-encoded envelope instead of encoding")
	flag.Parse()

	codec := envelope.New()

	if *decode != "" {
		plaintext, err := codec.DecryptRequest(*decode)
		if err != nil {
			log.Fatalf("FAIL: %v", err)
		}
		fmt.Println(string(plaintext))
		return
	}

	var params map[string]string
	if err := json.Unmarshal([]byte(*paramsJSON), &params); err != nil {
		log.Fatalf("FAIL: -params is not a flat JSON object: %v", err)
	}

	enc, err := codec.EncryptParams(params)
	if err != nil {
		log.Fatalf("FAIL: encrypt: %v", err)
	}
	fmt.Printf("envelope: %s\n", enc)

	got, err := codec.DecryptParams(enc)
	if err != nil {
		log.Fatalf("FAIL: self-decode: %v", err)
	}

	for k, want := range params {
		if got[k] != want {
			fmt.Printf("FAIL: round trip mismatch on %q: %q != %q\n", k, got[k], want)
			os.Exit(1)
		}
	}
	fmt.Println("PASS: round trip intact")
}

// Command devtoken は開発用に JWT_SECRET で署名したBearerトークンを発行します。
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	jwtmw "account_backend/internal/platform/jwt"
)

func main() {
	sub := flag.Uint("sub", 1, "subject (client id)")
	role := flag.String("role", jwtmw.RoleAdmin, "role claim; empty for none")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	// .envを読み込む
	_ = godotenv.Load(".env")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	token, err := jwtmw.NewGenerator(secret, *ttl).GenerateToken(*sub, *role)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}

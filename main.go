// main.go 是 tokount 的程序入口。
// 该文件负责加载 .env、注入版本号并执行 Cobra 根命令；
// 任何致命错误都以单行 JSON 错误载荷写到 stderr，并以状态码 2 退出。
package main

import (
	"os"

	"github.com/joho/godotenv"

	"tokount/cmd"
)

// version 默认值为 dev。
// 发布时可以通过 -ldflags "-X main.version=vX.Y.Z" 覆盖该值。
var version = "dev"

func main() {
	// .env 不存在时忽略。
	_ = godotenv.Load()

	if err := cmd.Execute(version); err != nil {
		cmd.WriteError(os.Stderr, err)
		os.Exit(2)
	}
}

package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenRequestID 请求链路 ID，base58 编码的 snowflake
func GenRequestID() string {
	return node.Generate().Base58()
}

package nakama

// MatchNameDaifugo is the authoritative match handler name registered with Nakama.
const MatchNameDaifugo = "daifugo_match"

// RpcQuickMatch is the RPC id clients call to find or create a lobby-capable match.
const RpcQuickMatch = "quick_match"

// GameLabelName identifies this game in match label queries.
const GameLabelName = "daifugo"

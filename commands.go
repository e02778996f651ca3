package ircwire

// Outgoing-message builder helpers. Each follows spec.md §6 exactly:
// it assembles the wire string by hand and round-trips it through
// Parse, so a built Message carries the identical range table (and is
// subject to the identical invariants) as one received off the wire.
//
// Builder names are prefixed with Send to avoid colliding with the
// typed command views of the same concept in command.go: Ping, Pong,
// Privmsg, Notice, Join, Part, Quit and Nick already name the parsed
// view of a message; SendPing and friends name the thing that
// produces the wire form those views later parse back out of.

// SendPass builds PASS <password>.
func SendPass(password string) (*Message, error) {
	return Parse(CmdPass + " " + password)
}

// SendNick builds NICK <newnick>.
func SendNick(newnick string) (*Message, error) {
	return Parse(CmdNick + " " + newnick)
}

// SendUser builds USER <user> 0 * :<realname>, per RFC 2812 §3.1.3. The
// second and third parameters are vestigial (historically a bitmask
// and an unused hostname); sending "0" and "*" is what every modern
// client does.
func SendUser(user, realname string) (*Message, error) {
	return Parse(CmdUser + " " + user + " 0 * :" + realname)
}

// SendCapReq builds CAP REQ :<capability>, requesting that a single
// IRCv3 capability be enabled for the connection.
func SendCapReq(capability string) (*Message, error) {
	return Parse(CmdCap + " REQ :" + capability)
}

// SendPing builds PING :<host>.
func SendPing(host string) (*Message, error) {
	return Parse(CmdPing + " :" + host)
}

// SendPong builds PONG :<host>. Transport calls this itself to answer
// a server PING; callers otherwise have no reason to send one.
func SendPong(host string) (*Message, error) {
	return Parse(CmdPong + " :" + host)
}

// SendJoin builds JOIN <channel>.
func SendJoin(channel string) (*Message, error) {
	return Parse(CmdJoin + " " + channel)
}

// SendJoinKey builds JOIN <channel> <key>, for channels with mode +k set.
func SendJoinKey(channel, key string) (*Message, error) {
	return Parse(CmdJoin + " " + channel + " " + key)
}

// SendPartAll builds JOIN 0, the special case RFC 2812 §3.2.1 defines
// for leaving every joined channel at once.
func SendPartAll() (*Message, error) {
	return Parse(CmdJoin + " 0")
}

// SendPart builds PART <channel>.
func SendPart(channel string) (*Message, error) {
	return Parse(CmdPart + " " + channel)
}

// SendPartReason builds PART <channel> :<reason>.
func SendPartReason(channel, reason string) (*Message, error) {
	return Parse(CmdPart + " " + channel + " :" + reason)
}

// SendMsg builds PRIVMSG <target> :<text>.
func SendMsg(target, text string) (*Message, error) {
	return Parse(CmdPrivmsg + " " + target + " :" + text)
}

// SendNotice builds NOTICE <target> :<text>. RFC 2812 §3.3.2 forbids
// automatic replies to a NOTICE; callers sending one are expected to
// know their recipient won't auto-reply either.
func SendNotice(target, text string) (*Message, error) {
	return Parse(CmdNotice + " " + target + " :" + text)
}

// SendQuit builds QUIT with no reason.
func SendQuit() (*Message, error) {
	return Parse(CmdQuit)
}

// SendQuitReason builds QUIT :<reason>, shown to other clients as the
// client disconnects, if the server is configured to relay it.
func SendQuitReason(reason string) (*Message, error) {
	return Parse(CmdQuit + " :" + reason)
}

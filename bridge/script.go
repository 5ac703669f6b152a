package bridge

import "encoding/json"

// Shim is injected at document start. It exposes
// window.opencami.invoke(cmd, args), which resolves with the command result
// or rejects with the error string. The handler is registered with reply
// support, so postMessage itself returns the promise.
const Shim = `(function () {
  if (window.opencami) return;
  var seq = 0;
  window.opencami = {
    invoke: function (cmd, args) {
      var msg = JSON.stringify({ id: ++seq, cmd: cmd, args: args || {} });
      return window.webkit.messageHandlers.opencami.postMessage(msg).then(function (raw) {
        var reply = JSON.parse(raw);
        if (!reply.ok) throw reply.error;
        return reply.result === undefined ? null : reply.result;
      });
    }
  };
})();`

// EncodeReply serializes r as the string handed back to postMessage.
func EncodeReply(r Reply) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

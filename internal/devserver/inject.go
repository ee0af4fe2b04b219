package devserver

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StyleID is the id of the injected <style> element
const StyleID = "las-jit"

// reloadClient swaps the injected stylesheet whenever the server pushes an update
const reloadClient = `(function(){
var style=document.getElementById("` + StyleID + `");
var proto=location.protocol==="https:"?"wss://":"ws://";
var ws=new WebSocket(proto+location.host+"` + WSPath + `");
ws.onmessage=function(e){
var m=JSON.parse(e.data);
if(m.type!=="update"||!style)return;
fetch(m.path+"?t="+m.timestamp).then(function(r){return r.text()}).then(function(css){style.textContent=css});
};
})();`

// InjectCSS returns page with css in a <style id="las-jit"> element at the
// end of <head>, followed by the reload client. A previous injection is
// replaced. Pages without <head> get one from the HTML parser.
func InjectCSS(page []byte, css string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc.Find("#" + StyleID).Remove()
	doc.Find("script[data-las-client]").Remove()

	doc.Find("head").First().AppendNodes(
		rawTextElement(atom.Style, css, html.Attribute{Key: "id", Val: StyleID}),
		rawTextElement(atom.Script, reloadClient, html.Attribute{Key: "data-las-client"}),
	)

	out, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return []byte(out), nil
}

// rawTextElement builds a <style> or <script> node. Their text is rendered
// verbatim, so CSS and JS need no escaping.
func rawTextElement(a atom.Atom, text string, attrs ...html.Attribute) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

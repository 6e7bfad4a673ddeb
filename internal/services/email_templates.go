package services

// otpEmailHTML takes: title, blurb, code, year.
const otpEmailHTML = `<!DOCTYPE html>
<html>
  <body style="margin:0;padding:0;background-color:#f4f4f7;font-family:Helvetica,Arial,sans-serif;">
    <table role="presentation" width="100%%" cellpadding="0" cellspacing="0">
      <tr>
        <td align="center" style="padding:32px 16px;">
          <table role="presentation" width="420" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;padding:32px;">
            <tr>
              <td align="center" style="font-size:20px;font-weight:bold;color:#222;padding-bottom:12px;">%s</td>
            </tr>
            <tr>
              <td align="center" style="font-size:14px;color:#555;padding-bottom:24px;">%s</td>
            </tr>
            <tr>
              <td align="center" style="font-size:32px;letter-spacing:8px;font-weight:bold;color:#111;padding-bottom:24px;">%s</td>
            </tr>
            <tr>
              <td align="center" style="font-size:12px;color:#999;">If you did not request this code, you can safely ignore this email.</td>
            </tr>
            <tr>
              <td align="center" style="font-size:11px;color:#bbb;padding-top:16px;">&copy; %d Lumen Studio</td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>`
